//go:build unix && !linux

package mmapfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps f read-only and private. MAP_POPULATE is Linux-specific;
// on other unix targets the kernel faults pages in lazily on first touch
// instead.
func mapFile(f *os.File, size int64) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}
