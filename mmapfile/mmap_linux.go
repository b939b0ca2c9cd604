//go:build linux

package mmapfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps f read-only and private, passing MAP_POPULATE so the
// kernel faults all pages in up front instead of lazily on first touch —
// the direct analog of original_source/FastUniq.hpp's
// mmap(..., PROT_READ, MAP_PRIVATE | MAP_POPULATE, fd, 0).
func mapFile(f *os.File, size int64) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE|unix.MAP_POPULATE)
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}
