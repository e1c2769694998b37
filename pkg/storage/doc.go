// Package storage stores file content as opaque blobs.
//
// Two backends implement Storage: Local keeps each object as a file under a
// root directory, S3Storage keeps it in an S3-compatible bucket. Open picks one
// from Config:
//
//	store, err := storage.Open(storage.Config{Driver: storage.DriverLocal, Root: "/var/lib/files"})
//	if err != nil {
//		return err
//	}
//
//	info, err := store.Put(ctx, bytes.NewReader(data), int64(len(data)))
//	// info.Key is the handle to persist; for Local it is the absolute file path.
//
// Objects derived from another one are written under an explicit key:
//
//	_, err = store.Put(ctx, thumb, -1, storage.WithKey(info.Key+"_250"))
//
// Get returns ErrNotFound for missing objects. MIMEFromName resolves a content
// type from a file name extension without touching storage.
package storage
