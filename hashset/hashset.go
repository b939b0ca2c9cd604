// Package hashset implements a single-threaded open-addressing set of
// 64-bit fingerprints, linearly probed, with a prefetch hook for callers
// that want to overlap table latency with other work.
package hashset

import (
	"github.com/rpcpool/uniquify/fingerprint"
)

// loadFactor is the maximum size/capacity ratio before Insert grows the
// table. Kept well under 1 so linear probing stays short.
const loadFactor = 0.5

// initCapacity is the slot count a freshly constructed HashSet starts
// with.
const initCapacity = 64

// empty marks an unoccupied slot. It is the same reserved value
// fingerprint.Sentinel uses, so a real fingerprint can never be mistaken
// for an empty slot as long as callers hash through fingerprint.Hash.
const empty = fingerprint.Sentinel

// HashSet is an open-addressing set of uint64 fingerprints. It is not
// safe for concurrent use; ShardedSet supplies the locking.
type HashSet struct {
	data []uint64
	size int
}

// New returns a HashSet with the default initial capacity.
func New() *HashSet {
	return &HashSet{data: newSlots(initCapacity)}
}

func newSlots(n int) []uint64 {
	s := make([]uint64, n)
	for i := range s {
		s[i] = empty
	}
	return s
}

func (h *HashSet) slot(hash uint64) int {
	return int((hash >> 32) % uint64(len(h.data)))
}

// Find reports whether hash is present in the set.
func (h *HashSet) Find(hash uint64) bool {
	n := len(h.data)
	for i := h.slot(hash); ; i = (i + 1) % n {
		switch h.data[i] {
		case empty:
			return false
		case hash:
			return true
		}
	}
}

// Insert adds hash to the set, growing the table first if doing so would
// push the load factor above loadFactor. It returns true if hash was not
// already present.
func (h *HashSet) Insert(hash uint64) bool {
	for float64(h.size+1) > float64(len(h.data))*loadFactor {
		h.grow()
	}
	n := len(h.data)
	for i := h.slot(hash); ; i = (i + 1) % n {
		switch h.data[i] {
		case empty:
			h.data[i] = hash
			h.size++
			return true
		case hash:
			return false
		}
	}
}

// grow doubles capacity and rehashes every occupied slot.
func (h *HashSet) grow() {
	old := h.data
	h.data = newSlots(len(old) * 2)
	for _, v := range old {
		if v != empty {
			h.insertDuringRehash(v)
		}
	}
}

// insertDuringRehash places an already-known-unique, already-known-valid
// hash into the (already grown, still-being-populated) table without
// touching h.size or re-checking the load factor.
func (h *HashSet) insertDuringRehash(hash uint64) {
	n := len(h.data)
	for i := h.slot(hash); ; i = (i + 1) % n {
		if h.data[i] == empty {
			h.data[i] = hash
			return
		}
	}
}

// Size returns the current number of occupied slots.
func (h *HashSet) Size() int {
	return h.size
}

// Prefetch issues a non-binding hint that the slot hash would probe from
// is about to be accessed. The hint is one plain load of that slot (see
// prefetch); it has no observable effect beyond (possibly) warming a
// cache line.
func (h *HashSet) Prefetch(hash uint64) {
	prefetch(&h.data[h.slot(hash)])
}
