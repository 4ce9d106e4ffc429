package strcore

import (
	"testing"
	"testing/quick"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/strcore/pkg/foreign"
)

// Code units per character: 2 1 1 1 2 2 2
const snowy = "\U0001F3C2\u2603\u2745\u2746\u2744\uFE0E\u26C4\uFE0F\u2744\uFE0F"

func requireIndexPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
		var ie *IndexError
		require.ErrorAs(t, err, &ie)
	}()
	f()
}

func TestLiteral(t *testing.T) {
	lit := Literal("foobar")
	require.True(t, lit.IsStatic())
	require.Nil(t, lit.Owner())
	require.Equal(t, 6, lit.Len())
	require.Equal(t, 1, lit.ElementWidth())
	require.True(t, lit.IsASCII())
	require.Equal(t, "foobar", lit.String())

	wide := Literal(snowy)
	require.True(t, wide.IsStatic())
	require.Equal(t, 11, wide.Len())
	require.Equal(t, 2, wide.ElementWidth())
	require.False(t, wide.IsASCII())
	require.Equal(t, snowy, wide.String())

	empty := Literal("")
	require.Equal(t, 0, empty.Len())
	require.Nil(t, empty.Owner())
}

func TestNewPicksWidth(t *testing.T) {
	ascii := New("foobar")
	require.True(t, ascii.IsNative())
	require.False(t, ascii.IsStatic())
	require.NotNil(t, ascii.Owner())
	require.Equal(t, 1, ascii.ElementWidth())

	wide := New("snow ☃")
	require.Equal(t, 2, wide.ElementWidth())
	require.Equal(t, 6, wide.Len())
	require.Equal(t, "snow ☃", wide.String())

	packed := FromUTF16([]uint16{'a', 'b', 'c'})
	require.Equal(t, 1, packed.ElementWidth())
	require.Equal(t, "abc", packed.String())

	runes := FromRunes([]rune{'x', 0x1F600})
	require.Equal(t, 3, runes.Len())
	require.Equal(t, []rune{'x', 0x1F600}, runes.Runes())
}

func TestCodeUnitAt(t *testing.T) {
	cores := map[string]String{
		"native":  New(snowy),
		"literal": Literal("foobar"),
		"opaque":  FromForeign(foreign.New("foobar")),
		"foreign": FromForeign(foreign.New(snowy)),
		"empty":   {},
	}
	for name, s := range cores {
		t.Run(name, func(t *testing.T) {
			units := s.CodeUnits()
			for i, u := range units {
				require.Equal(t, u, s.CodeUnitAt(i))
			}
			requireIndexPanic(t, func() { s.CodeUnitAt(s.Len()) })
			requireIndexPanic(t, func() { s.CodeUnitAt(-1) })
		})
	}
}

func TestEmptyString(t *testing.T) {
	empties := []String{
		{},
		Literal(""),
		New(""),
		FromUTF16(nil),
		FromForeign(foreign.New("")),
		FromForeign(foreign.NewUTF16(nil)),
		New("abc").Slice(1, 1),
		FromForeign(foreign.New(snowy)).Slice(4, 4),
	}
	for i, e := range empties {
		assert.True(t, e.IsContiguous(), "empty %d contiguous", i)
		assert.True(t, e.IsASCII(), "empty %d ascii", i)
		assert.Equal(t, "", e.String())
		for j, o := range empties {
			assert.True(t, e.Equal(o), "empty %d == empty %d", i, j)
			assert.Equal(t, 0, e.Compare(o))
		}
	}
}

func TestIsASCII(t *testing.T) {
	require.True(t, New("foobar").IsASCII())
	require.False(t, New("snow☃man").IsASCII())
	require.True(t, FromForeign(foreign.New("foobar")).IsASCII())
	require.False(t, FromForeign(foreign.New(snowy)).IsASCII())

	// A wide owner can still carry ASCII windows.
	mixed := New("abc☃def")
	require.False(t, mixed.IsASCII())
	require.True(t, mixed.Slice(0, 3).IsASCII())
	require.True(t, mixed.Slice(4, 7).IsASCII())
	require.False(t, mixed.Slice(2, 4).IsASCII())

	opaque := FromForeign(foreign.New(snowy)).Slice(0, 2)
	require.False(t, opaque.IsASCII())
}

func TestNativeSliceSharesOwner(t *testing.T) {
	condition := func(text string, a, b uint8) bool {
		s := New(text)
		units := utf16.Encode([]rune(text))
		lo, hi := int(a)%(len(units)+1), int(b)%(len(units)+1)
		if lo > hi {
			lo, hi = hi, lo
		}
		sub := s.Slice(lo, hi)
		if sub.Len() != hi-lo || !sub.IsNative() {
			return false
		}
		if hi > lo && sub.Owner() != s.Owner() {
			return false
		}
		if sub.Offset() != s.Offset()+lo {
			return false
		}
		return sub.Equal(FromUTF16(units[lo:hi]))
	}
	require.NoError(t, quick.Check(condition, &quick.Config{MaxCount: 500}))
}

var sliceSink String

func TestSliceAllocatesNothing(t *testing.T) {
	native := New("abcdefghijkl")
	allocs := testing.AllocsPerRun(100, func() { sliceSink = native.Slice(2, 8) })
	require.Zero(t, allocs)
	require.Same(t, native.Owner(), sliceSink.Owner())

	opaque := FromForeign(foreign.New("abcdefghijkl"))
	allocs = testing.AllocsPerRun(100, func() { sliceSink = opaque.Slice(2, 8) })
	require.Zero(t, allocs)
	require.Equal(t, "cdefgh", sliceSink.String())
}

func TestSliceOfSlice(t *testing.T) {
	s := New("hello, wonderful world")
	mid := s.Slice(7, 16)
	require.Equal(t, "wonderful", mid.String())
	inner := mid.Slice(3, 6)
	require.Equal(t, "der", inner.String())
	require.Equal(t, 10, inner.Offset())
	require.Same(t, s.Owner(), inner.Owner())
}

func TestSliceBounds(t *testing.T) {
	s := New("abcdef")
	requireIndexPanic(t, func() { s.Slice(-1, 2) })
	requireIndexPanic(t, func() { s.Slice(4, 3) })
	requireIndexPanic(t, func() { s.Slice(0, 7) })
	requireIndexPanic(t, func() { s.Slice(7, 7) })
	require.Equal(t, 0, s.Slice(6, 6).Len())
	require.Equal(t, "abcdef", s.Slice(0, 6).String())
}

func TestForeignSliceStaysForeign(t *testing.T) {
	obj := foreign.New(snowy)
	s := FromForeign(obj).Slice(2, 8)
	require.True(t, s.IsForeign())
	require.Equal(t, 6, s.Len())
	require.True(t, s.IsContiguous())
	require.Equal(t, 2, s.ElementWidth())
	require.Same(t, obj, s.Owner())

	opaque := FromForeign(foreign.New("foobar")).Slice(3, 6)
	require.True(t, opaque.IsForeign())
	require.False(t, opaque.IsContiguous())
	require.Equal(t, 0, opaque.ElementWidth())
	require.Equal(t, "bar", opaque.String())
}

func TestScalarsDecodePairs(t *testing.T) {
	s := New("a\U0001F600b")
	require.Equal(t, 4, s.Len())
	require.Equal(t, []rune{'a', 0x1F600, 'b'}, s.Runes())

	var got []rune
	for r := range s.Scalars() {
		got = append(got, r)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []rune{'a', 0x1F600}, got)

	lone := FromUTF16([]uint16{'x', 0xD800, 'y'})
	require.Equal(t, []rune{'x', 0xD800, 'y'}, lone.Runes())
	require.Equal(t, "x\uFFFDy", lone.String())
}

func TestFromBuffer(t *testing.T) {
	s := New("abcdef")
	buf := s.buf
	window := FromBuffer(buf, 2, 3)
	require.Equal(t, "cde", window.String())
	require.Same(t, buf, window.Owner())
	requireIndexPanic(t, func() { FromBuffer(buf, 7, 0) })
	requireIndexPanic(t, func() { FromBuffer(buf, 4, 3) })
}
