// Package worker implements the per-range scan→hash→dedup→stage loop
// that each of Uniquify's worker goroutines runs over its own byte range.
package worker

import (
	"fmt"
	"io"
	"sync"

	"github.com/rpcpool/uniquify/fingerprint"
	"github.com/rpcpool/uniquify/partition"
)

// BatchSize is the number of records scanned and hashed together before
// the worker dedups and stages the batch. 500 is a sound default; values
// in 128-1024 are acceptable without correctness impact.
const BatchSize = 500

// PrefetchStride is how many batch positions ahead of the current insert
// the table prefetch is issued for. 16 is tuned for current memory
// hierarchies; 8-32 all work correctly.
const PrefetchStride = 16

// initialBufferCap is the starting size of a worker's output staging
// buffer, doubled on demand.
const initialBufferCap = 1024

// Set is the subset of shardedset.ShardedSet that a Worker depends on,
// kept narrow so tests can exercise Process against a fake.
type Set interface {
	Insert(hash uint64) bool
	Prefetch(hash uint64)
}

// Process scans every record in rng over data, deduplicates each
// fingerprint against set, and writes the first-sight occurrence of every
// record (content plus its terminating 0x0A) to out in scan order. For a
// non-empty rng, out is written to exactly once, in a single Write call,
// while stdoutMu is held — mirroring the original's single
// flush-under-mutex per worker so concurrent workers never interleave
// mid-record on a shared sink. An empty rng returns without writing.
//
// Process returns the underlying Write error, if any; a write failure is
// fatal to the worker and must be surfaced by the caller.
func Process(data []byte, rng partition.Range, set Set, out io.Writer, stdoutMu *sync.Mutex) error {
	if rng.Empty() {
		return nil
	}

	chunk := data[rng.Start:rng.End]
	buf := make([]byte, 0, initialBufferCap)

	var (
		hashes  [BatchSize]uint64
		lengths [BatchSize]int
		starts  [BatchSize]int
	)

	pos := 0
	for pos < len(chunk) {
		n := 0
		for n < BatchSize && pos < len(chunk) {
			length, hash := fingerprint.Scan(chunk[pos:])
			hashes[n] = hash
			lengths[n] = length
			starts[n] = pos
			pos += length + 1
			n++
		}

		for i := 0; i < n; i++ {
			if i+PrefetchStride < n {
				set.Prefetch(hashes[i+PrefetchStride])
			}
			if set.Insert(hashes[i]) {
				buf = appendRecord(buf, chunk[starts[i]:starts[i]+lengths[i]])
			}
		}
	}

	stdoutMu.Lock()
	defer stdoutMu.Unlock()
	if _, err := out.Write(buf); err != nil {
		return fmt.Errorf("worker: flush output: %w", err)
	}
	return nil
}

// appendRecord grows buf by doubling, matching OutputBuffer's doubling
// growth policy from spec.md §3, then appends record followed by its own
// terminating 0x0A. The 0x0A is always synthesized here rather than read
// out of the mapped input, since the final record of the file may not
// have one (spec.md §6: "absence of a trailing newline means the final
// record extends to end-of-file") and reading one past the mapping would
// run off the end of the file's pages.
func appendRecord(buf []byte, record []byte) []byte {
	need := len(buf) + len(record) + 1
	if need > cap(buf) {
		newCap := cap(buf)
		if newCap == 0 {
			newCap = initialBufferCap
		}
		for newCap < need {
			newCap *= 2
		}
		grown := make([]byte, len(buf), newCap)
		copy(grown, buf)
		buf = grown
	}
	buf = append(buf, record...)
	return append(buf, '\n')
}
