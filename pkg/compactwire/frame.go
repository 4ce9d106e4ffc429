// Package compactwire frames strcore strings for storage or transport.
//
// Frame layout:
//
//	magic "SC" | version u8 | flags u8 | varint units | varint payload len | payload | crc32 LE
//
// The payload is ASCII bytes for 8-bit frames and little-endian UTF-16
// for 16-bit frames, optionally zstd-compressed. The CRC (IEEE) covers
// everything between the magic and the CRC itself.
package compactwire

import (
	"errors"

	"github.com/rawbytedev/strcore/zc"
)

const (
	Magic0    = 'S'
	Magic1    = 'C'
	VersionV1 = 1

	FlagWide  = 0x01
	FlagZstd  = 0x02
	FlagASCII = 0x04

	preambleSize = 4
	crcSize      = 4
)

var (
	ErrShortFrame         = errors.New("compactwire: frame too short")
	ErrBadMagic           = errors.New("compactwire: bad magic")
	ErrUnsupportedVersion = errors.New("compactwire: unsupported version")
	ErrChecksum           = errors.New("compactwire: crc mismatch")
	ErrCorrupt            = errors.New("compactwire: corrupt frame")
)

type Options struct {
	zc.Options `yaml:",inline"`

	// Compress enables zstd for payloads of at least CompressMin bytes.
	Compress    bool `yaml:"compress"`
	CompressMin int  `yaml:"compress_min"`
}

func DefaultOptions() Options {
	return Options{
		Options:     zc.Options{CheckAlignment: true},
		CompressMin: 256,
	}
}

func writePreamble(buf []byte, flags byte) []byte {
	return append(buf, Magic0, Magic1, VersionV1, flags)
}

func readPreamble(data []byte) (byte, error) {
	if len(data) < preambleSize+crcSize {
		return 0, ErrShortFrame
	}
	if data[0] != Magic0 || data[1] != Magic1 {
		return 0, ErrBadMagic
	}
	if data[2] != VersionV1 {
		return 0, ErrUnsupportedVersion
	}
	return data[3], nil
}
