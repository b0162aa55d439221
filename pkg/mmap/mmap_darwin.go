//go:build darwin

package mmap

import (
	"syscall"
	"unsafe"
)

func mmap(fd int, offset int64, length int, prot int, flags int) ([]byte, error) {
	return syscall.Mmap(fd, offset, length, prot, flags)
}

func munmap(b []byte) error {
	return syscall.Munmap(b)
}

// madvise is not exposed by the syscall package on macOS; issue the
// system call directly.
func madvise(b []byte, advice int) error {
	_, _, errno := syscall.Syscall(syscall.SYS_MADVISE,
		uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), uintptr(advice))
	if errno != 0 {
		return errno
	}
	return nil
}

const (
	ProtRead  = syscall.PROT_READ  //nolint:stylecheck
	MapShared = syscall.MAP_SHARED //nolint:stylecheck

	MadvSequential = 2 //nolint:stylecheck // MADV_SEQUENTIAL
)
