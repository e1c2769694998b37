// Package id generates sortable identifiers.
//
// NewObjectID returns 24 hex characters and is used for stored records.
// NewULID returns 26 Crockford base32 characters and is used for request ids.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID generates a ULID: 48-bit millisecond timestamp followed by 80 random
// bits. ULIDs are lexicographically sortable by creation time.
func NewULID() string {
	var raw [16]byte
	binary.BigEndian.PutUint64(raw[:8], uint64(time.Now().UnixMilli())<<16)
	if _, err := rand.Read(raw[6:]); err != nil {
		// Degraded but functional.
		binary.BigEndian.PutUint64(raw[8:], uint64(time.Now().UnixNano()))
	}

	return encodeBase32(raw)
}

// encodeBase32 writes 128 bits as 26 characters, 5 bits at a time, with the
// first character carrying the 3 leading bits.
func encodeBase32(raw [16]byte) string {
	hi := binary.BigEndian.Uint64(raw[:8])
	lo := binary.BigEndian.Uint64(raw[8:])

	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockfordBase32[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}

	return string(out[:])
}
