// Package owner implements the shared, reference-counted code unit
// buffers that back native strings.
//
// A Buffer holds either 8-bit (ASCII) or 16-bit (UTF-16) code units. The
// first Len units are published and never change again; the units
// between Len and Cap may only be written by a holder that observes
// IsUnique.
package owner

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rawbytedev/strcore/internal/common"
)

var (
	ErrShared   = errors.New("owner: buffer is shared")
	ErrCapacity = errors.New("owner: capacity exceeded")
	ErrWidth    = errors.New("owner: unit does not fit element width")
)

type Buffer struct {
	width  int
	narrow []byte
	wide   []uint16
	n      int
	ascii  bool
	refs   atomic.Int32
}

// NewNarrow allocates an empty 8-bit buffer.
func NewNarrow(capacity int) *Buffer {
	return &Buffer{width: 1, narrow: make([]byte, capacity), ascii: true}
}

// NewWide allocates an empty 16-bit buffer.
func NewWide(capacity int) *Buffer {
	return &Buffer{width: 2, wide: make([]uint16, capacity), ascii: true}
}

// FromBytes adopts b as a fully published 8-bit buffer without copying.
// Every byte must be ASCII; the caller gives up the right to modify b.
func FromBytes(b []byte) (*Buffer, error) {
	if !common.IsASCIIBytes(b) {
		return nil, fmt.Errorf("%w: non-ASCII byte in narrow buffer", ErrWidth)
	}
	return &Buffer{width: 1, narrow: b, n: len(b), ascii: true}, nil
}

// FromUnits adopts u as a fully published 16-bit buffer without copying.
func FromUnits(u []uint16) *Buffer {
	return &Buffer{width: 2, wide: u, n: len(u), ascii: common.IsASCIIUnits(u)}
}

func (b *Buffer) Width() int { return b.width }

func (b *Buffer) Cap() int {
	if b.width == 1 {
		return len(b.narrow)
	}
	return len(b.wide)
}

// Len is the number of published units.
func (b *Buffer) Len() int { return b.n }

// ASCII reports whether every published unit is below 0x80.
func (b *Buffer) ASCII() bool { return b.ascii }

// At returns the unit at absolute index i. Callers bound-check.
func (b *Buffer) At(i int) uint16 {
	if b.width == 1 {
		return uint16(b.narrow[i])
	}
	return b.wide[i]
}

// Bytes returns the published window [off, off+n) of an 8-bit buffer.
// The result aliases the buffer and must not be written.
func (b *Buffer) Bytes(off, n int) []byte {
	if b.width != 1 {
		return nil
	}
	return b.narrow[off : off+n : off+n]
}

// Units returns the published window [off, off+n) of a 16-bit buffer.
// The result aliases the buffer and must not be written.
func (b *Buffer) Units(off, n int) []uint16 {
	if b.width != 2 {
		return nil
	}
	return b.wide[off : off+n : off+n]
}

func (b *Buffer) Retain() { b.refs.Add(1) }

// Release drops one reference and returns how many remain.
func (b *Buffer) Release() int32 {
	n := b.refs.Add(-1)
	if n < 0 {
		panic("owner: release of unreferenced buffer")
	}
	return n
}

func (b *Buffer) Refs() int32 { return b.refs.Load() }

// IsUnique reports whether at most one holder references b. Only a unique
// holder may append.
func (b *Buffer) IsUnique() bool { return b.refs.Load() <= 1 }

// AppendBytes writes ASCII bytes after the published prefix of an 8-bit
// buffer.
func (b *Buffer) AppendBytes(p []byte) error {
	if err := b.checkAppend(len(p)); err != nil {
		return err
	}
	if b.width != 1 || !common.IsASCIIBytes(p) {
		return ErrWidth
	}
	b.n += copy(b.narrow[b.n:], p)
	return nil
}

// AppendUnits writes code units after the published prefix. An 8-bit
// buffer only accepts units below 0x80.
func (b *Buffer) AppendUnits(u []uint16) error {
	if err := b.checkAppend(len(u)); err != nil {
		return err
	}
	ascii := common.IsASCIIUnits(u)
	if b.width == 1 {
		if !ascii {
			return ErrWidth
		}
		for i, c := range u {
			b.narrow[b.n+i] = byte(c)
		}
		b.n += len(u)
		return nil
	}
	b.n += copy(b.wide[b.n:], u)
	b.ascii = b.ascii && ascii
	return nil
}

func (b *Buffer) checkAppend(n int) error {
	if !b.IsUnique() {
		return ErrShared
	}
	if b.n+n > b.Cap() {
		return fmt.Errorf("%w: need %d, have %d", ErrCapacity, b.n+n, b.Cap())
	}
	return nil
}

// Clone copies the published units into a new buffer of the given width
// and capacity. Widening from 8 to 16 bits is allowed; narrowing is not.
func (b *Buffer) Clone(off, n, width, capacity int) (*Buffer, error) {
	if capacity < n {
		capacity = n
	}
	if width < b.width {
		return nil, ErrWidth
	}
	if width == 1 {
		nb := NewNarrow(capacity)
		nb.n = copy(nb.narrow, b.narrow[off:off+n])
		return nb, nil
	}
	nb := NewWide(capacity)
	if b.width == 2 {
		nb.n = copy(nb.wide, b.wide[off:off+n])
		nb.ascii = common.IsASCIIUnits(nb.wide[:n])
		return nb, nil
	}
	for i, c := range b.narrow[off : off+n] {
		nb.wide[i] = uint16(c)
	}
	nb.n = n
	return nb, nil
}
