//go:build windows

package mmapfile

import "os"

// mapFile has no true memory-mapping fallback wired for Windows in this
// repository; it reads the file fully into a heap buffer instead. The
// dedup engine's throughput goal targets a multicore Linux host (see
// SPEC_FULL.md's purpose and scope), so this path exists only to keep the
// package buildable elsewhere, not to meet the populate-on-map contract.
func mapFile(f *os.File, size int64) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func unmapFile(data []byte) error {
	return nil
}
