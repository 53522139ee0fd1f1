package odid

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
		wantErr  bool
	}{
		{name: "Lowercase", input: "fa0bbc0d", expected: []byte{0xFA, 0x0B, 0xBC, 0x0D}},
		{name: "Uppercase", input: "FA0BBC0D", expected: []byte{0xFA, 0x0B, 0xBC, 0x0D}},
		{name: "Separators dropped", input: "FA 0b:BC-0d\n", expected: []byte{0xFA, 0x0B, 0xBC, 0x0D}},
		{name: "Non-hex letters dropped", input: "0xzz123", expected: []byte{0x01, 0x23}},
		{name: "0x prefix zero is kept as a digit", input: "0x01 0x02", expected: []byte{0x00, 0x10, 0x02}},
		{name: "Empty", input: "", expected: []byte{}},
		{name: "Odd digits", input: "abc", wantErr: true},
		{name: "Odd after filtering", input: "ab c-g", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToBytes(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrFormat))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		b := make([]byte, rng.Intn(128))
		rng.Read(b)

		got, err := HexToBytes(BytesToHex(b))
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}

func TestReadLE(t *testing.T) {
	buf := []byte{0x01, 0x02, 0xFF, 0xFF, 0x80, 0x00, 0x00, 0x00, 0xFF}

	tests := []struct {
		name     string
		offset   int
		width    int
		signed   bool
		expected int64
	}{
		{name: "Single byte", offset: 0, width: 1, expected: 0x01},
		{name: "Uint16", offset: 0, width: 2, expected: 0x0201},
		{name: "Uint16 all ones", offset: 2, width: 2, expected: 0xFFFF},
		{name: "Int16 minus one", offset: 2, width: 2, signed: true, expected: -1},
		{name: "Int8 negative", offset: 8, width: 1, signed: true, expected: -1},
		{name: "Int24", offset: 2, width: 3, signed: true, expected: 0x80FFFF - 0x1000000},
		{name: "Uint32", offset: 4, width: 4, expected: 0x80},
		{name: "Int32 positive", offset: 4, width: 4, signed: true, expected: 0x80},
		{name: "Int64", offset: 1, width: 8, signed: true, expected: -72057591873667326},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLE(buf, tt.offset, tt.width, tt.signed)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadLE_Bounds(t *testing.T) {
	buf := make([]byte, 4)

	tests := []struct {
		name   string
		offset int
		width  int
	}{
		{name: "Past end", offset: 3, width: 2},
		{name: "Negative offset", offset: -1, width: 1},
		{name: "Zero width", offset: 0, width: 0},
		{name: "Too wide", offset: 0, width: 9},
		{name: "Empty read at end", offset: 4, width: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLE(buf, tt.offset, tt.width, false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBounds))
		})
	}
}

func TestTypedReaders(t *testing.T) {
	buf := []byte{0x78, 0x49, 0x8B, 0x0D, 0x30, 0xF8}

	i32, err := Int32LE(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(227232120), i32)

	u32, err := Uint32LE(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(227232120), u32)

	i16, err := Int16LE(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, int16(-2000), i16)

	u16, err := Uint16LE(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xF830), u16)

	_, err = Uint32LE(buf, 3)
	assert.True(t, errors.Is(err, ErrBounds))
}
