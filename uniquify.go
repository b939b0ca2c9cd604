// Package uniquify implements the parallel dedup engine: it memory-maps
// a newline-separated input file, scans and fingerprints records across
// worker goroutines, deduplicates fingerprints in a sharded hash set, and
// writes the first-sight occurrence of every distinct record to an
// output sink exactly once.
package uniquify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rpcpool/uniquify/mmapfile"
	"github.com/rpcpool/uniquify/partition"
	"github.com/rpcpool/uniquify/shardedset"
	"github.com/rpcpool/uniquify/worker"
)

// Uniquify deduplicates the newline-separated records in the file at
// inputPath, writing each distinct record followed by 0x0A to standard
// output exactly once, and returns the number of distinct records.
//
// workerCount must be a positive int; values less than 1 are treated as
// 1. Record order is preserved within a worker's scan but is otherwise
// unspecified across workers (spec.md §5).
//
// Unlike the reference implementation this describes, Uniquify returns
// an error instead of aborting the process on I/O failure; callers that
// want the documented process-abort behavior (spec.md §6) should use the
// cmd/uniquify binary, which turns a non-nil error into a diagnostic on
// stderr and a nonzero exit.
func Uniquify(inputPath string, workerCount int) (uint32, error) {
	return uniquifyTo(inputPath, workerCount, os.Stdout)
}

// uniquifyTo is Uniquify with the output sink made explicit, so tests can
// dedup into an in-memory buffer instead of the process's real stdout.
func uniquifyTo(inputPath string, workerCount int, out io.Writer) (uint32, error) {
	if workerCount < 1 {
		workerCount = 1
	}

	m, err := mmapfile.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("uniquify: %w", err)
	}
	defer m.Close()

	if m.Len() == 0 {
		return 0, nil
	}

	data := m.Bytes()
	set := shardedset.New(workerCount)
	ranges := partition.Split(data, workerCount)

	var stdoutMu sync.Mutex
	var wg sync.WaitGroup
	errs := make([]error, workerCount)

	for i, rng := range ranges {
		wg.Add(1)
		go func(i int, rng partition.Range) {
			defer wg.Done()
			errs[i] = worker.Process(data, rng, set, out, &stdoutMu)
		}(i, rng)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return 0, fmt.Errorf("uniquify: %w", err)
		}
	}

	return uint32(set.Size()), nil
}
