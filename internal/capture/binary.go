package capture

import (
	"fmt"
	"io"
)

// BinaryReader returns the whole input as a single capture
type BinaryReader struct {
	r      io.Reader
	source string
	done   bool
}

// NewBinaryReader creates a new raw byte reader
func NewBinaryReader(r io.Reader, source string) *BinaryReader {
	return &BinaryReader{r: r, source: source}
}

// ReadCapture returns all bytes on the first call and io.EOF afterwards
func (b *BinaryReader) ReadCapture() (*Capture, error) {
	if b.done {
		return nil, io.EOF
	}
	b.done = true

	data, err := io.ReadAll(b.r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.source, err)
	}
	if len(data) == 0 {
		return nil, io.EOF
	}

	return &Capture{
		Data:   data,
		Source: b.source,
		Index:  1,
	}, nil
}
