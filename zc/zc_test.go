package zc

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestStringBytesAliases(t *testing.T) {
	s := "Hello I'm Test 1"
	b := StringBytes(s)
	if !bytes.Equal(b, []byte(s)) {
		t.Fatalf("StringBytes mismatch: %q", b)
	}
	if StringBytes("") != nil {
		t.Fatalf("expected nil view of empty string")
	}
	if got := BytesString(b); got != s {
		t.Fatalf("BytesString round trip: %q", got)
	}
	if BytesString(nil) != "" {
		t.Fatalf("expected empty string")
	}
}

func TestUint16sViewsLittleEndian(t *testing.T) {
	if !LittleEndian() {
		t.Skip("aliasing is only offered on little-endian hosts")
	}
	want := []uint16{'h', 0x2603, 0xD83C, 0xDFC2}
	buf := make([]byte, 0, 2*len(want))
	for _, u := range want {
		buf = binary.LittleEndian.AppendUint16(buf, u)
	}
	got, ok := Uint16s(buf, Options{CheckAlignment: true})
	if !ok {
		t.Fatalf("expected aligned view")
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unit %d: got %#x want %#x", i, got[i], want[i])
		}
	}
	// The view shares memory with buf.
	buf[0] = 'j'
	if got[0] != 'j' {
		t.Fatalf("view does not alias input")
	}
	if back := Uint16Bytes(got); &back[0] != &buf[0] || len(back) != len(buf) {
		t.Fatalf("Uint16Bytes does not alias")
	}
}

func TestUint16sRejects(t *testing.T) {
	if _, ok := Uint16s([]byte{1, 2, 3}, Options{}); ok {
		t.Fatalf("odd length accepted")
	}
	if !LittleEndian() {
		return
	}
	buf := make([]byte, 9)
	if _, ok := Uint16s(buf[1:], Options{CheckAlignment: true}); ok {
		t.Fatalf("misaligned input accepted with alignment checks on")
	}
	if u, ok := Uint16s(buf[1:], Options{}); !ok || len(u) != 4 {
		t.Fatalf("misaligned input refused with alignment checks off")
	}
	if u, ok := Uint16s(nil, Options{}); !ok || len(u) != 0 {
		t.Fatalf("empty input refused")
	}
}

func BenchmarkStringBytes(b *testing.B) {
	s := "Hello I'm Test Comp+10"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = StringBytes(s)
	}
}
