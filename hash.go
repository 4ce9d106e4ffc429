package strcore

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// Hash returns a BLAKE3 digest of the UTF-16LE image of s. Strings that
// are Equal hash the same regardless of representation.
func (s String) Hash() [32]byte {
	h := blake3.New()
	var scratch [512]byte
	fill := 0
	flush := func() {
		_, _ = h.Write(scratch[:fill])
		fill = 0
	}
	read := s.reader()
	for i := 0; i < s.n; i++ {
		if fill == len(scratch) {
			flush()
		}
		binary.LittleEndian.PutUint16(scratch[fill:], read(i))
		fill += 2
	}
	flush()
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Hash64 returns the first 8 bytes of Hash as an integer, for use as a
// map or table key.
func (s String) Hash64() uint64 {
	sum := s.Hash()
	return binary.LittleEndian.Uint64(sum[:8])
}
