package strcore

import (
	"fmt"

	"github.com/rawbytedev/strcore/pkg/foreign"
)

// Repr describes the storage behind s, for diagnostics:
//
//	String(Contiguous(owner: .native@0xc000010000[0...6], capacity = 16)) = "foobar"
//	String(Contiguous(owner: null, count: 6)) = "foobar"
//	String(Contiguous(owner: .foreign@0xc000012000, count: 11)) = "..."
//	String(Opaque(buffer: .foreign@0xc000014000[3...6])) = "bar"
func (s String) Repr() string {
	return fmt.Sprintf("String(%s) = %q", s.core(), s.String())
}

func (s String) core() string {
	switch {
	case s.kind == kindForeign && s.IsContiguous():
		return fmt.Sprintf("Contiguous(owner: .foreign@%#x, count: %d)", foreign.Addr(s.handle), s.n)
	case s.kind == kindForeign:
		return fmt.Sprintf("Opaque(buffer: .foreign@%#x[%d...%d])", foreign.Addr(s.handle), s.off, s.off+s.n)
	case s.static || s.buf == nil:
		return fmt.Sprintf("Contiguous(owner: null, count: %d)", s.n)
	}
	return fmt.Sprintf("Contiguous(owner: .native@%p[%d...%d], capacity = %d)", s.buf, s.off, s.off+s.n, s.buf.Cap())
}
