// Package files implements the file tree of a user: uploads of folders, files
// and images, listing, publishing and content delivery, plus the background
// task that writes resized image variants.
//
// Metadata lives in PostgreSQL, content in a storage.Storage. A file's
// LocalPath is the storage key of its content; image variants are stored
// next to it as "<LocalPath>_<width>".
package files
