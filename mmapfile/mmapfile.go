// Package mmapfile maps a read-only file into memory as a plain []byte,
// hinting the kernel to populate the mapping's pages eagerly so worker
// goroutines don't pay page-fault latency mid-scan.
package mmapfile

import (
	"fmt"
	"os"
)

// File is a read-only memory mapping of a file's contents. The zero value
// is not usable; construct one with Open.
type File struct {
	data []byte
	f    *os.File
}

// Open opens path read-only, maps its full contents into memory, and
// returns the mapping. A zero-length file is reported via a zero-length
// Bytes() rather than an error — callers should check Len() before doing
// anything with Bytes().
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: open %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmapfile: stat %q: %w", path, err)
	}

	size := info.Size()
	if size == 0 {
		return &File{f: f}, nil
	}

	data, err := mapFile(f, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmapfile: mmap %q: %w", path, err)
	}

	return &File{data: data, f: f}, nil
}

// Bytes returns the mapped contents. The slice is read-only for the
// caller's purposes: writing through it is undefined behavior, since the
// mapping is backed by a private, read-only view of the file.
func (m *File) Bytes() []byte {
	return m.data
}

// Len returns the size of the mapped file in bytes.
func (m *File) Len() int {
	return len(m.data)
}

// Close unmaps the region, if any, and closes the underlying file.
func (m *File) Close() error {
	var unmapErr error
	if m.data != nil {
		unmapErr = unmapFile(m.data)
		m.data = nil
	}
	closeErr := m.f.Close()
	if unmapErr != nil {
		return fmt.Errorf("mmapfile: munmap: %w", unmapErr)
	}
	if closeErr != nil {
		return fmt.Errorf("mmapfile: close: %w", closeErr)
	}
	return nil
}
