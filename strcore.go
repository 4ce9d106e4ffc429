// Package strcore implements a Unicode string value whose storage is
// either a native code unit buffer (ASCII-packed or UTF-16) or a zero-copy
// window onto a foreign string object.
//
// Strings are values: copying a String never copies text. Slicing shares
// the backing storage; only bridging a partial window to a foreign
// object, or appending through a Builder that does not own its buffer
// exclusively, allocates.
package strcore

import (
	"iter"
	"runtime"
	"slices"
	"unicode/utf16"

	"github.com/rawbytedev/strcore/internal/common"
	"github.com/rawbytedev/strcore/pkg/foreign"
	"github.com/rawbytedev/strcore/pkg/owner"
	"github.com/rawbytedev/strcore/zc"
)

type kind uint8

const (
	kindNative kind = iota
	kindForeign
)

// String is an immutable Unicode string. The zero value is the empty
// string. Compare Strings with Equal, not ==.
type String struct {
	kind   kind
	static bool
	buf    *owner.Buffer
	handle foreign.Handle
	ref    *retain
	off    int
	n      int
}

// retain holds one reference on a buffer for as long as some String
// value carrying it is reachable.
type retain struct {
	buf *owner.Buffer
}

func hold(b *owner.Buffer) *retain {
	b.Retain()
	r := &retain{buf: b}
	runtime.AddCleanup(r, func(b *owner.Buffer) { b.Release() }, b)
	return r
}

// Literal returns a string with static storage and no owner. ASCII text
// aliases s directly; other text is transcoded to UTF-16 once.
func Literal(s string) String {
	n, ascii := common.UTF16Len(s)
	if n == 0 {
		return String{static: true}
	}
	var b *owner.Buffer
	if ascii {
		b, _ = owner.FromBytes(zc.StringBytes(s))
	} else {
		b = owner.FromUnits(utf16.Encode([]rune(s)))
	}
	return String{static: true, buf: b, n: n}
}

// New copies s into a freshly owned buffer using the default allocator.
func New(s string) String { return Default.New(s) }

// FromUTF16 copies u into a freshly owned buffer using the default
// allocator.
func FromUTF16(u []uint16) String { return Default.FromUTF16(u) }

// FromRunes encodes r into a freshly owned buffer using the default
// allocator.
func FromRunes(r []rune) String { return Default.New(string(r)) }

// FromBuffer returns the window [off, off+n) of the published part of b.
func FromBuffer(b *owner.Buffer, off, n int) String {
	if off < 0 || off > b.Len() {
		panic(&IndexError{Op: "FromBuffer", Index: off, Len: b.Len()})
	}
	if n < 0 || off+n > b.Len() {
		panic(&IndexError{Op: "FromBuffer", Index: off + n, Len: b.Len()})
	}
	return native(b, off, n)
}

func native(b *owner.Buffer, off, n int) String {
	return String{buf: b, ref: hold(b), off: off, n: n}
}

// Len returns the length in code units. Width-1 units and UTF-16 units
// measure the same for ASCII, so lengths are comparable across
// representations.
func (s String) Len() int { return s.n }

func (s String) IsEmpty() bool { return s.n == 0 }

func (s String) IsNative() bool { return s.kind == kindNative }

func (s String) IsForeign() bool { return s.kind == kindForeign }

// IsStatic reports whether s is native storage with no owner.
func (s String) IsStatic() bool { return s.kind == kindNative && s.static }

// IsContiguous reports whether the units of s can be read as one array.
// For foreign strings this probes the handle on every call.
func (s String) IsContiguous() bool {
	if s.kind == kindNative || s.n == 0 {
		return true
	}
	_, ok := s.handle.Contiguous16()
	return ok
}

// ElementWidth returns the unit size in bytes, or 0 for an opaque
// foreign string.
func (s String) ElementWidth() int {
	if s.kind == kindForeign {
		if _, ok := s.handle.Contiguous16(); ok || s.n == 0 {
			return 2
		}
		return 0
	}
	if s.buf == nil {
		return 1
	}
	return s.buf.Width()
}

// Owner returns the *owner.Buffer or foreign.Handle behind s, or nil
// for static storage. It is meant for identity reporting.
func (s String) Owner() any {
	if s.kind == kindForeign {
		return s.handle
	}
	if s.static || s.buf == nil {
		return nil
	}
	return s.buf
}

// Offset is the start of s within its owner.
func (s String) Offset() int { return s.off }

// CodeUnitAt returns the code unit at i. It panics with *IndexError when
// i is outside [0, Len()).
func (s String) CodeUnitAt(i int) uint16 {
	if i < 0 || i >= s.n {
		panic(&IndexError{Op: "CodeUnitAt", Index: i, Len: s.n})
	}
	return s.at(i)
}

func (s String) at(i int) uint16 {
	if s.kind == kindForeign {
		return s.handle.CodeUnitAt(s.off + i)
	}
	return s.buf.At(s.off + i)
}

// narrow returns the 8-bit view of s when it has one.
func (s String) narrow() ([]byte, bool) {
	if s.kind != kindNative || s.buf == nil || s.buf.Width() != 1 {
		return nil, false
	}
	return s.buf.Bytes(s.off, s.n), true
}

// wide returns the contiguous 16-bit view of s when it has one.
func (s String) wide() ([]uint16, bool) {
	switch {
	case s.kind == kindForeign:
		u, ok := s.handle.Contiguous16()
		if !ok {
			return nil, false
		}
		return u[s.off : s.off+s.n : s.off+s.n], true
	case s.buf != nil && s.buf.Width() == 2:
		return s.buf.Units(s.off, s.n), true
	}
	return nil, false
}

// Scalars iterates over the Unicode scalars of s. Unpaired surrogates
// are yielded as-is.
func (s String) Scalars() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		if b, ok := s.narrow(); ok {
			for _, c := range b {
				if !yield(rune(c)) {
					return
				}
			}
			return
		}
		at := s.at
		if u, ok := s.wide(); ok {
			at = func(i int) uint16 { return u[i] }
		}
		for i := 0; i < s.n; {
			r, size := common.DecodeUnits(at, i, s.n)
			if !yield(r) {
				return
			}
			i += size
		}
	}
}

// Runes returns the scalars of s.
func (s String) Runes() []rune {
	out := make([]rune, 0, s.n)
	for r := range s.Scalars() {
		out = append(out, r)
	}
	return out
}

// String returns s as UTF-8. Unpaired surrogates become U+FFFD.
func (s String) String() string {
	if b, ok := s.narrow(); ok {
		return string(b)
	}
	if u, ok := s.wide(); ok {
		return string(utf16.Decode(u))
	}
	return string(s.Runes())
}

// AppendUTF16 appends the code units of s to dst.
func (s String) AppendUTF16(dst []uint16) []uint16 {
	if u, ok := s.wide(); ok {
		return append(dst, u...)
	}
	dst = slices.Grow(dst, s.n)
	if b, ok := s.narrow(); ok {
		return widen(dst, b)
	}
	for i := 0; i < s.n; i++ {
		dst = append(dst, s.at(i))
	}
	return dst
}

// AppendASCII appends the units of s to dst as bytes. It is only
// meaningful when s.IsASCII() holds; other units are truncated.
func (s String) AppendASCII(dst []byte) []byte {
	if b, ok := s.narrow(); ok {
		return append(dst, b...)
	}
	read := s.reader()
	for i := 0; i < s.n; i++ {
		dst = append(dst, byte(read(i)))
	}
	return dst
}

// CodeUnits returns a copy of the code units of s.
func (s String) CodeUnits() []uint16 {
	return s.AppendUTF16(make([]uint16, 0, s.n))
}
