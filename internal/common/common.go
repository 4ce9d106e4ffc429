package common

import (
	"unicode/utf8"
)

const (
	surrHigh = 0xD800
	surrLow  = 0xDC00
	surrEnd  = 0xE000
	surrSelf = 0x10000
)

// WriteVarUintTo appends varint-encoded x to dst using a small stack scratch.
func WriteVarUintTo(dst []byte, x uint64) []byte {
	var scratch [10]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	i++
	return append(dst, scratch[:i]...)
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// A zero byte count means b ended before the varint did.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == 10 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}

// IsASCIIBytes reports whether every byte of b is below 0x80.
func IsASCIIBytes(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsASCIIUnits reports whether every code unit of u is below 0x80.
func IsASCIIUnits(u []uint16) bool {
	for _, c := range u {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func IsHighSurrogate(u uint16) bool { return u >= surrHigh && u < surrLow }
func IsLowSurrogate(u uint16) bool  { return u >= surrLow && u < surrEnd }

// DecodeUnits decodes the scalar starting at index i of a code unit
// sequence of length n read through at. It returns the scalar and the
// number of units consumed. An unpaired surrogate is returned as its own
// value, so decoding never merges two distinct unit sequences; converting
// such a rune to UTF-8 yields U+FFFD.
func DecodeUnits(at func(int) uint16, i, n int) (rune, int) {
	u := at(i)
	switch {
	case u < surrHigh || u >= surrEnd:
		return rune(u), 1
	case IsHighSurrogate(u) && i+1 < n:
		if l := at(i + 1); IsLowSurrogate(l) {
			return surrSelf + (rune(u)-surrHigh)<<10 + (rune(l) - surrLow), 2
		}
	}
	return rune(u), 1
}

// UTF16Len returns the number of UTF-16 code units needed for s.
// Invalid UTF-8 bytes count as one unit each since they decode to U+FFFD.
func UTF16Len(s string) (n int, ascii bool) {
	ascii = true
	for _, r := range s {
		if r >= utf8.RuneSelf {
			ascii = false
		}
		if r >= surrSelf {
			n++
		}
		n++
	}
	return n, ascii
}
