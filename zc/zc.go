// Package zc (zero-copy) holds the unsafe aliasing helpers strcore uses
// to view Go strings and wire buffers as code unit arrays without
// copying. Every helper here trades safety for speed: the caller must
// keep the source alive and unmodified for as long as the view is used.
package zc

import (
	"unsafe"
)

// Options contains runtime flags controlling zero-copy behaviour.
type Options struct {
	// AliasInput lets decoders return strings that point into the input
	// buffer instead of copying it.
	AliasInput bool `yaml:"alias_input"`

	// CheckAlignment enables runtime alignment checks before aliasing a
	// byte slice as []uint16. Leave it on unless the target tolerates
	// unaligned 16-bit loads.
	CheckAlignment bool `yaml:"check_alignment"`
}

var littleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// LittleEndian reports whether the host stores uint16 little-endian.
func LittleEndian() bool { return littleEndian }

// StringBytes views s as a byte slice. The result must never be written.
func StringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// BytesString views b as a string. b must not change afterwards.
func BytesString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Uint16s views little-endian b as []uint16. It reports false when the
// host is big-endian, len(b) is odd, or alignment checking is on and b is
// not 2-byte aligned.
func Uint16s(b []byte, opts Options) ([]uint16, bool) {
	if !littleEndian || len(b)%2 != 0 {
		return nil, false
	}
	if len(b) == 0 {
		return []uint16{}, true
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if opts.CheckAlignment && uintptr(p)%unsafe.Alignof(uint16(0)) != 0 {
		return nil, false
	}
	return unsafe.Slice((*uint16)(p), len(b)/2), true
}

// Uint16Bytes views u as its native-endian byte image.
func Uint16Bytes(u []uint16) []byte {
	if len(u) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(u))), len(u)*2)
}
