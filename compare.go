package strcore

import (
	"bytes"
	"slices"

	"github.com/rivo/uniseg"

	"github.com/rawbytedev/strcore/internal/common"
)

// Equal reports whether s and t hold the same scalar sequence, whatever
// their representations.
func (s String) Equal(t String) bool {
	// Lengths are UTF-16 unit counts on both sides and decoding is a
	// bijection, so a length mismatch is final.
	if s.n != t.n {
		return false
	}
	if s.n == 0 || sameWindow(s, t) {
		return true
	}
	if a, ok := s.narrow(); ok {
		if b, ok := t.narrow(); ok {
			return bytes.Equal(a, b)
		}
	}
	if a, ok := s.wide(); ok {
		if b, ok := t.wide(); ok {
			return slices.Equal(a, b)
		}
	}
	sat, tat := s.reader(), t.reader()
	for i := 0; i < s.n; i++ {
		if sat(i) != tat(i) {
			return false
		}
	}
	return true
}

// Less reports whether s orders before t by scalar value.
func (s String) Less(t String) bool { return s.Compare(t) < 0 }

// Compare orders s and t lexicographically by scalar value; a proper
// prefix orders first. It returns -1, 0 or +1.
func (s String) Compare(t String) int {
	if sameWindow(s, t) {
		return 0
	}
	if a, ok := s.narrow(); ok {
		if b, ok := t.narrow(); ok {
			return bytes.Compare(a, b)
		}
	}
	sat, tat := s.reader(), t.reader()
	i, j := 0, 0
	for i < s.n && j < t.n {
		// Units below the surrogate range are whole scalars, and scalar
		// order matches unit order there.
		if a, b := sat(i), tat(j); a == b && (a < 0xD800 || a >= 0xE000) {
			i++
			j++
			continue
		}
		r1, n1 := common.DecodeUnits(sat, i, s.n)
		r2, n2 := common.DecodeUnits(tat, j, t.n)
		if r1 != r2 {
			if r1 < r2 {
				return -1
			}
			return 1
		}
		i += n1
		j += n2
	}
	switch {
	case i < s.n:
		return 1
	case j < t.n:
		return -1
	}
	return 0
}

// reader returns an unchecked unit accessor relative to s's start,
// bypassing the handle when a contiguous view exists.
func (s String) reader() func(int) uint16 {
	if b, ok := s.narrow(); ok {
		return func(i int) uint16 { return uint16(b[i]) }
	}
	if u, ok := s.wide(); ok {
		return func(i int) uint16 { return u[i] }
	}
	return s.at
}

// HasPrefix reports whether the leading extended grapheme clusters of s
// equal the clusters of p, cluster for cluster.
func (s String) HasPrefix(p String) bool {
	if p.n == 0 {
		return true
	}
	if p.n > s.n {
		return false
	}
	rest, pat := s.String(), p.String()
	sState, pState := -1, -1
	var sc, pc string
	for len(pat) > 0 {
		if len(rest) == 0 {
			return false
		}
		pc, pat, _, pState = uniseg.FirstGraphemeClusterInString(pat, pState)
		sc, rest, _, sState = uniseg.FirstGraphemeClusterInString(rest, sState)
		if sc != pc {
			return false
		}
	}
	// Clusters are matched on the UTF-8 rendering, where an unpaired
	// surrogate and U+FFFD look alike; the units settle it.
	return s.Slice(0, p.n).Equal(p)
}

// HasSuffix reports whether the trailing extended grapheme clusters of s
// equal the clusters of p, cluster for cluster.
func (s String) HasSuffix(p String) bool {
	if p.n == 0 {
		return true
	}
	if p.n > s.n {
		return false
	}
	sc, pc := clusters(s.String()), clusters(p.String())
	if len(pc) > len(sc) {
		return false
	}
	if !slices.Equal(sc[len(sc)-len(pc):], pc) {
		return false
	}
	return s.Slice(s.n-p.n, s.n).Equal(p)
}

func clusters(str string) []string {
	var out []string
	g := uniseg.NewGraphemes(str)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
