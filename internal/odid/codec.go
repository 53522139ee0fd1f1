package odid

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToBytes converts hex text to bytes. Characters outside [0-9a-fA-F] are
// dropped before decoding, so "FA 0B:bc-0d" is accepted.
func HexToBytes(text string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
			return r
		default:
			return -1
		}
	}, text)

	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of hex digits (%d)", ErrFormat, len(clean))
	}

	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return data, nil
}

// BytesToHex renders bytes as lowercase hex
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// ReadLE reads width bytes at offset as a little-endian integer. When signed
// is set the value is sign-extended from its top bit.
func ReadLE(buf []byte, offset, width int, signed bool) (int64, error) {
	if width < 1 || width > 8 {
		return 0, fmt.Errorf("%w: invalid width %d", ErrBounds, width)
	}
	if offset < 0 || offset+width > len(buf) {
		return 0, fmt.Errorf("%w: offset %d width %d exceeds length %d", ErrBounds, offset, width, len(buf))
	}

	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[offset+i])
	}

	if signed && width < 8 {
		shift := uint(64 - 8*width)
		return int64(v<<shift) >> shift, nil
	}
	return int64(v), nil
}

// Uint16LE reads an unsigned 16-bit little-endian value
func Uint16LE(buf []byte, offset int) (uint16, error) {
	v, err := ReadLE(buf, offset, 2, false)
	return uint16(v), err
}

// Int16LE reads a signed 16-bit little-endian value
func Int16LE(buf []byte, offset int) (int16, error) {
	v, err := ReadLE(buf, offset, 2, true)
	return int16(v), err
}

// Uint32LE reads an unsigned 32-bit little-endian value
func Uint32LE(buf []byte, offset int) (uint32, error) {
	v, err := ReadLE(buf, offset, 4, false)
	return uint32(v), err
}

// Int32LE reads a signed 32-bit little-endian value
func Int32LE(buf []byte, offset int) (int32, error) {
	v, err := ReadLE(buf, offset, 4, true)
	return int32(v), err
}
