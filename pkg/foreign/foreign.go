// Package foreign defines the capability surface strcore needs from an
// externally owned, immutable string object, plus Object, a reference
// implementation that stores ASCII text as bytes and everything else as
// UTF-16.
package foreign

import (
	"fmt"
	"reflect"
	"unicode/utf16"

	"github.com/rawbytedev/strcore/internal/common"
)

// Handle is an immutable string object owned outside strcore.
type Handle interface {
	// Len is the length in UTF-16 code units.
	Len() int
	// CodeUnitAt returns the unit at i, 0 <= i < Len().
	CodeUnitAt(i int) uint16
	// Contiguous16 exposes the whole string as one UTF-16 array when the
	// object happens to store it that way. The slice must not be written.
	Contiguous16() ([]uint16, bool)
}

// ASCIIer is implemented by handles that know whether they are ASCII
// without scanning.
type ASCIIer interface {
	IsASCII() bool
}

// Same reports whether a and b are the same object. Handles that are
// not pointer-shaped have no identity and are never the same.
func Same(a, b Handle) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	pa := Addr(a)
	return pa != 0 && pa == Addr(b)
}

// Addr returns the address of the object behind h, or 0 when h is not
// pointer-shaped.
func Addr(h Handle) uintptr {
	if h == nil {
		return 0
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		return v.Pointer()
	}
	return 0
}

// Repr renders h as TypeName@0xADDR = "text".
func Repr(h Handle) string {
	if h == nil {
		return "nil"
	}
	t := reflect.TypeOf(h)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return fmt.Sprintf("%s@%#x = %q", t.Name(), Addr(h), Decode(h))
}

// Decode returns h's text as UTF-8.
func Decode(h Handle) string {
	if u, ok := h.Contiguous16(); ok {
		return string(utf16.Decode(u))
	}
	n := h.Len()
	out := make([]rune, 0, n)
	for i := 0; i < n; {
		r, size := common.DecodeUnits(h.CodeUnitAt, i, n)
		out = append(out, r)
		i += size
	}
	return string(out)
}

// Object is an immutable string stored either as ASCII bytes or as
// UTF-16 units. Only the UTF-16 form exposes a contiguous view.
type Object struct {
	narrow []byte
	wide   []uint16
}

// New builds an Object from UTF-8 text, choosing the narrow form when s
// is ASCII.
func New(s string) *Object {
	n, ascii := common.UTF16Len(s)
	if ascii {
		return &Object{narrow: []byte(s)}
	}
	w := make([]uint16, 0, n)
	for _, r := range s {
		w = utf16.AppendRune(w, r)
	}
	return &Object{wide: w}
}

// NewUTF16 copies u into a new Object that always exposes a contiguous
// 16-bit view.
func NewUTF16(u []uint16) *Object {
	w := make([]uint16, len(u))
	copy(w, u)
	return &Object{wide: w}
}

// AdoptUTF16 wraps u without copying. The caller gives up u: it must
// not be written afterwards.
func AdoptUTF16(u []uint16) *Object {
	if u == nil {
		u = []uint16{}
	}
	return &Object{wide: u}
}

// NewNarrow copies ASCII bytes into a new Object without a contiguous
// 16-bit view.
func NewNarrow(b []byte) (*Object, error) {
	if !common.IsASCIIBytes(b) {
		return nil, fmt.Errorf("foreign: narrow object requires ASCII input")
	}
	return &Object{narrow: append([]byte(nil), b...)}, nil
}

func (o *Object) Len() int {
	if o.wide != nil {
		return len(o.wide)
	}
	return len(o.narrow)
}

func (o *Object) CodeUnitAt(i int) uint16 {
	if o.wide != nil {
		return o.wide[i]
	}
	return uint16(o.narrow[i])
}

func (o *Object) Contiguous16() ([]uint16, bool) {
	if o.wide == nil {
		return nil, false
	}
	return o.wide, true
}

func (o *Object) IsASCII() bool {
	if o.wide != nil {
		return common.IsASCIIUnits(o.wide)
	}
	return true
}

func (o *Object) String() string { return Decode(o) }
