package strcore

import (
	"github.com/rawbytedev/strcore/internal/common"
	"github.com/rawbytedev/strcore/pkg/foreign"
)

// contiguousString is the foreign object produced when a String has to
// be materialized. It owns a private UTF-16 copy and remembers the core
// it was copied from.
type contiguousString struct {
	*foreign.Object
	origin String
}

// FromForeign wraps the full range of h without copying or decoding.
func FromForeign(h foreign.Handle) String {
	return String{kind: kindForeign, handle: h, n: h.Len()}
}

// Recover returns the String a handle produced by ToForeign was copied
// from, sharing that string's original storage. It reports false for
// any other handle.
func Recover(h foreign.Handle) (String, bool) {
	cs, ok := h.(*contiguousString)
	if !ok {
		return String{}, false
	}
	return cs.origin, true
}

// ToForeign bridges s using the default allocator.
func ToForeign(s String) foreign.Handle { return Default.ToForeign(s) }

// ToForeign returns a foreign handle with the text of s. A foreign string
// covering its whole handle returns that handle itself; anything else is
// copied into a new object.
func (a *Allocator) ToForeign(s String) foreign.Handle {
	if s.kind == kindForeign && s.off == 0 && s.n == s.handle.Len() {
		return s.handle
	}
	a.log.Debug("materializing foreign copy",
		"units", s.n,
		"foreign", s.kind == kindForeign,
		"offset", s.off)
	return &contiguousString{
		Object: foreign.AdoptUTF16(s.CodeUnits()),
		origin: s,
	}
}

// IsASCII reports whether every scalar of s is below 0x80.
func (s String) IsASCII() bool {
	if s.n == 0 {
		return true
	}
	if s.kind == kindNative {
		if s.buf.Width() == 1 || s.buf.ASCII() {
			return true
		}
		return common.IsASCIIUnits(s.buf.Units(s.off, s.n))
	}
	if s.off == 0 && s.n == s.handle.Len() {
		if a, ok := s.handle.(foreign.ASCIIer); ok {
			return a.IsASCII()
		}
	}
	if u, ok := s.wide(); ok {
		return common.IsASCIIUnits(u)
	}
	for i := 0; i < s.n; i++ {
		if s.at(i) >= 0x80 {
			return false
		}
	}
	return true
}
