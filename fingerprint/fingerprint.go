// Package fingerprint locates records in a newline-separated byte stream
// and computes a deterministic 64-bit fingerprint for each one.
//
// A record is a maximal byte run not containing 0x0A, terminated by 0x0A
// or end of input. Newline location is delegated to bytes.IndexByte, which
// the Go runtime implements with vectorized assembly on amd64 and arm64 —
// the practical equivalent, without hand-written intrinsics, of scanning
// 32-byte lanes for the newline byte. The fingerprint itself is xxHash64:
// cheap, well distributed, and good enough that colliding two distinct
// records is vanishingly unlikely.
package fingerprint

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Sentinel is the reserved hash value that HashSet treats as an empty
// slot. A real record that happens to hash to Sentinel is remapped by
// Scan so the table never confuses "empty" with "present".
const Sentinel uint64 = ^uint64(0)

// Scan locates the next record in data and returns its length and 64-bit
// fingerprint. data must not be empty and the caller must guarantee the
// record either ends in a 0x0A or runs to the end of data; Scan does not
// itself require a trailing newline to be present.
//
// The returned length never includes the terminating newline.
func Scan(data []byte) (length int, hash uint64) {
	if nl := bytes.IndexByte(data, '\n'); nl >= 0 {
		length = nl
	} else {
		length = len(data)
	}
	hash = Hash(data[:length])
	return length, hash
}

// Hash computes the 64-bit fingerprint of a record's raw bytes, remapping
// the reserved sentinel value so it can never be mistaken for an empty
// HashSet slot.
func Hash(record []byte) uint64 {
	h := xxhash.Sum64(record)
	if h == Sentinel {
		h ^= 1
	}
	return h
}
