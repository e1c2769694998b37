package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"
)

// ObjectIDLen is the length of the hex form produced by NewObjectID.
const ObjectIDLen = 24

var (
	processUnique = newProcessUnique()
	objectCounter atomic.Uint32
)

func newProcessUnique() [5]byte {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		binary.BigEndian.PutUint32(b[:4], uint32(time.Now().UnixNano()))
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err == nil {
		objectCounter.Store(binary.BigEndian.Uint32(seed[:]))
	}
	return b
}

// NewObjectID returns a 12-byte identifier in hex: 4 bytes of unix seconds,
// 5 bytes unique to the process and a 3-byte counter.
// IDs created within the same process are strictly increasing per second.
func NewObjectID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	copy(b[4:9], processUnique[:])

	c := objectCounter.Add(1)
	b[9] = byte(c >> 16)
	b[10] = byte(c >> 8)
	b[11] = byte(c)

	return hex.EncodeToString(b[:])
}

// IsObjectID reports whether s looks like a value produced by NewObjectID.
func IsObjectID(s string) bool {
	if len(s) != ObjectIDLen {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
