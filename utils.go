package strcore

import (
	"unicode/utf16"

	"github.com/rawbytedev/strcore/pkg/foreign"
)

// utf16Encode transcodes s into exactly n UTF-16 units.
func utf16Encode(s string, n int) []uint16 {
	u := make([]uint16, 0, n)
	for _, r := range s {
		u = utf16.AppendRune(u, r)
	}
	return u
}

// widen copies ASCII bytes into dst as 16-bit units.
func widen(dst []uint16, b []byte) []uint16 {
	for _, c := range b {
		dst = append(dst, uint16(c))
	}
	return dst
}

// sameWindow reports whether a and b view the same units of the same
// storage.
func sameWindow(a, b String) bool {
	if a.kind != b.kind || a.off != b.off || a.n != b.n {
		return false
	}
	if a.kind == kindForeign {
		return foreign.Same(a.handle, b.handle)
	}
	return a.buf != nil && a.buf == b.buf
}

// must panics on buffer writes that a prior capacity and width check
// rules out.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
