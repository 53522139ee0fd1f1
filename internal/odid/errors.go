package odid

import "errors"

var (
	// ErrFormat is returned for malformed hex text.
	ErrFormat = errors.New("odid: malformed hex input")

	// ErrBounds is returned when a field or frame extends past the buffer.
	ErrBounds = errors.New("odid: read out of bounds")

	// ErrTypeMismatch is returned when a decoder is given a message of another type.
	ErrTypeMismatch = errors.New("odid: message type mismatch")

	// ErrUnsupported is returned by Decode for message types without a payload decoder.
	ErrUnsupported = errors.New("odid: unsupported message type")
)
