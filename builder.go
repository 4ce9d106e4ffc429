package strcore

import (
	"github.com/rawbytedev/strcore/pkg/owner"
)

// Builder accumulates text into an owned buffer. Appends write in place
// only while the builder is the buffer's sole holder; once a String has
// been published from it, the next append copies into a new buffer so
// published strings never change. A Builder must not be copied after
// first use and is not safe for concurrent use.
type Builder struct {
	alloc *Allocator
	buf   *owner.Buffer
}

// NewBuilder returns an empty builder that allocates through a.
func (a *Allocator) NewBuilder() *Builder { return &Builder{alloc: a} }

func (b *Builder) Len() int {
	if b.buf == nil {
		return 0
	}
	return b.buf.Len()
}

func (b *Builder) Cap() int {
	if b.buf == nil {
		return 0
	}
	return b.buf.Cap()
}

func (b *Builder) allocator() *Allocator {
	if b.alloc == nil {
		b.alloc = Default
	}
	return b.alloc
}

// String publishes the current contents. The result shares the
// builder's buffer.
func (b *Builder) String() String {
	if b.buf == nil || b.buf.Len() == 0 {
		return String{}
	}
	return native(b.buf, 0, b.buf.Len())
}

// Reset drops the builder's buffer. Strings already published keep it
// alive.
func (b *Builder) Reset() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
}

// AppendString appends UTF-8 text.
func (b *Builder) AppendString(s string) {
	if s == "" {
		return
	}
	b.Append(Literal(s))
}

// Append appends the text of s.
func (b *Builder) Append(s String) {
	if s.n == 0 {
		return
	}
	width := 1
	if !s.IsASCII() {
		width = 2
	}
	b.reserve(s.n, width)
	if p, ok := s.narrow(); ok && b.buf.Width() == 1 {
		must(b.buf.AppendBytes(p))
		return
	}
	u, ok := s.wide()
	if !ok {
		u = s.AppendUTF16(make([]uint16, 0, s.n))
	}
	must(b.buf.AppendUnits(u))
}

// reserve makes b.buf uniquely held, at least width bytes per unit and
// able to take n more units.
func (b *Builder) reserve(n, width int) {
	a := b.allocator()
	if b.buf == nil {
		c := a.capacityFor(n)
		if width == 1 {
			b.buf = owner.NewNarrow(c)
		} else {
			b.buf = owner.NewWide(c)
		}
		b.buf.Retain()
		return
	}
	need := b.buf.Len() + n
	unique := b.buf.IsUnique()
	if unique && b.buf.Width() >= width && need <= b.buf.Cap() {
		return
	}
	c := b.buf.Cap()
	if need > c {
		c = a.grow(c, need)
	}
	w := max(width, b.buf.Width())
	nb, err := b.buf.Clone(0, b.buf.Len(), w, c)
	must(err)
	a.log.Debug("builder copying buffer",
		"shared", !unique,
		"width", w,
		"units", b.buf.Len(),
		"capacity", c)
	b.buf.Release()
	nb.Retain()
	b.buf = nb
}
