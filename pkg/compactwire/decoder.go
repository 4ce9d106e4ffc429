package compactwire

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/strcore"
	"github.com/rawbytedev/strcore/internal/common"
	"github.com/rawbytedev/strcore/pkg/owner"
	"github.com/rawbytedev/strcore/zc"
)

// Decoder turns frames back into strings. With AliasInput set, an
// uncompressed frame is decoded without copying and the returned String
// points into the frame, which must then stay unmodified.
type Decoder struct {
	opts Options
	zdec *zstd.Decoder
}

func NewDecoder(opts Options) (*Decoder, error) {
	zdec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("compactwire: zstd decoder: %w", err)
	}
	return &Decoder{opts: opts, zdec: zdec}, nil
}

// Decode parses one frame and returns the string and the number of bytes
// consumed.
func (d *Decoder) Decode(data []byte) (strcore.String, int, error) {
	flags, err := readPreamble(data)
	if err != nil {
		return strcore.String{}, 0, err
	}
	pos := preambleSize
	units, n := common.ReadVarUint(data[pos:])
	if n == 0 {
		return strcore.String{}, 0, ErrShortFrame
	}
	pos += n
	plen, n := common.ReadVarUint(data[pos:])
	if n == 0 {
		return strcore.String{}, 0, ErrShortFrame
	}
	pos += n
	avail := len(data) - pos - crcSize
	if avail < 0 || plen > uint64(avail) {
		return strcore.String{}, 0, ErrShortFrame
	}
	if units > math.MaxInt32 {
		return strcore.String{}, 0, fmt.Errorf("%w: %d units", ErrCorrupt, units)
	}
	end := pos + int(plen)
	want := binary.LittleEndian.Uint32(data[end:])
	if crc32.ChecksumIEEE(data[2:end]) != want {
		return strcore.String{}, 0, ErrChecksum
	}
	consumed := end + crcSize

	payload := data[pos:end]
	alias := d.opts.AliasInput
	if flags&FlagZstd != 0 {
		payload, err = d.zdec.DecodeAll(payload, nil)
		if err != nil {
			return strcore.String{}, 0, fmt.Errorf("compactwire: zstd: %w", err)
		}
		// The decompressed buffer is private, so aliasing it is free.
		alias = true
	}

	buf, err := d.buffer(payload, flags, int(units), alias)
	if err != nil {
		return strcore.String{}, 0, err
	}
	return strcore.FromBuffer(buf, 0, int(units)), consumed, nil
}

func (d *Decoder) buffer(payload []byte, flags byte, units int, alias bool) (*owner.Buffer, error) {
	if flags&FlagWide == 0 {
		if len(payload) != units {
			return nil, fmt.Errorf("%w: %d units in %d-byte narrow payload", ErrCorrupt, units, len(payload))
		}
		if !alias {
			payload = append([]byte(nil), payload...)
		}
		b, err := owner.FromBytes(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		return b, nil
	}
	if len(payload) != units*2 {
		return nil, fmt.Errorf("%w: %d units in %d-byte wide payload", ErrCorrupt, units, len(payload))
	}
	if alias {
		if u, ok := zc.Uint16s(payload, d.opts.Options); ok {
			return owner.FromUnits(u), nil
		}
	}
	u := make([]uint16, units)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(payload[2*i:])
	}
	return owner.FromUnits(u), nil
}

// Close releases the zstd decoder.
func (d *Decoder) Close() {
	d.zdec.Close()
}
