package strcore

// Slice returns the units [lo, hi) of s. The result shares s's owner or
// handle and its reference; nothing is copied or allocated. It panics
// with *IndexError unless 0 <= lo <= hi <= Len().
func (s String) Slice(lo, hi int) String {
	switch {
	case lo < 0 || lo > s.n:
		panic(&IndexError{Op: "Slice", Index: lo, Len: s.n})
	case hi < lo || hi > s.n:
		panic(&IndexError{Op: "Slice", Index: hi, Len: s.n})
	}
	if lo == 0 && hi == s.n {
		return s
	}
	t := s
	t.off += lo
	t.n = hi - lo
	return t
}
