// Package unsafestr provides zero-copy conversions between byte slices
// and strings for hot parsing paths.
package unsafestr

import (
	"unsafe"
)

// BytesToString converts a byte slice to a string without copying.
// The returned string shares memory with b: do not modify b while the
// string is alive, and do not retain the string past the lifetime of
// the backing buffer (copy with string(b) instead when retaining).
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes converts a string to a byte slice without copying.
// The returned slice shares memory with s and must not be modified.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
