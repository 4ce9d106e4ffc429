package compactwire

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/strcore"
	"github.com/rawbytedev/strcore/internal/common"
	"github.com/rawbytedev/strcore/zc"
)

// Encoder frames strings. It reuses its scratch buffers between calls
// and is not safe for concurrent use.
type Encoder struct {
	opts    Options
	zenc    *zstd.Encoder
	payload []byte
	units   []uint16
}

func NewEncoder(opts Options) (*Encoder, error) {
	e := &Encoder{opts: opts}
	if opts.Compress {
		zenc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return nil, fmt.Errorf("compactwire: zstd encoder: %w", err)
		}
		e.zenc = zenc
	}
	return e, nil
}

// Encode returns a new frame holding the text of s.
func (e *Encoder) Encode(s strcore.String) ([]byte, error) {
	return e.AppendFrame(nil, s)
}

// AppendFrame appends the frame for s to dst.
func (e *Encoder) AppendFrame(dst []byte, s strcore.String) ([]byte, error) {
	var flags byte
	e.payload = e.payload[:0]
	if s.IsASCII() {
		flags |= FlagASCII
		e.payload = s.AppendASCII(e.payload)
	} else {
		flags |= FlagWide
		e.units = s.AppendUTF16(e.units[:0])
		if zc.LittleEndian() {
			e.payload = append(e.payload, zc.Uint16Bytes(e.units)...)
		} else {
			for _, u := range e.units {
				e.payload = binary.LittleEndian.AppendUint16(e.payload, u)
			}
		}
	}
	payload := e.payload
	if e.zenc != nil && len(payload) >= e.opts.CompressMin {
		payload = e.zenc.EncodeAll(payload, nil)
		flags |= FlagZstd
	}

	start := len(dst)
	dst = writePreamble(dst, flags)
	dst = common.WriteVarUintTo(dst, uint64(s.Len()))
	dst = common.WriteVarUintTo(dst, uint64(len(payload)))
	dst = append(dst, payload...)
	crc := crc32.ChecksumIEEE(dst[start+2:])
	dst = binary.LittleEndian.AppendUint32(dst, crc)
	return dst, nil
}

// Close releases the zstd encoder, if any.
func (e *Encoder) Close() error {
	if e.zenc != nil {
		return e.zenc.Close()
	}
	return nil
}
