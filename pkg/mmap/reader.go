// Package mmap provides read-only memory-mapped file access for
// zero-copy parsing of large inputs.
package mmap

import (
	"fmt"
	"os"
)

// Reader is a read-only memory mapping of a file. The mapped bytes are
// shared immutably: any number of goroutines may read them, nothing
// ever writes through the mapping.
type Reader struct {
	file *os.File
	data []byte
	size int64
}

// Open maps the file at path read-only and advises the kernel that
// access will be sequential.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		file.Close()
		return nil, fmt.Errorf("file %q is empty", path)
	}

	data, err := mmap(int(file.Fd()), 0, int(size), ProtRead, MapShared)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}

	// Advisory only; a failure changes nothing about correctness.
	_ = madvise(data, MadvSequential)

	return &Reader{file: file, data: data, size: size}, nil
}

// Bytes returns the entire mapped region. The slice is valid until
// Close is called; callers that retain data past Close must copy it.
func (r *Reader) Bytes() []byte { return r.data }

// Len returns the size of the mapped file in bytes.
func (r *Reader) Len() int64 { return r.size }

// Close unmaps the region and closes the underlying file.
func (r *Reader) Close() error {
	var err error
	if r.data != nil {
		err = munmap(r.data)
		r.data = nil
	}
	if r.file != nil {
		if cerr := r.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		r.file = nil
	}
	return err
}
