package capture

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"droneid/internal/pack"
)

const streamChunkSize = 1024

// StreamReader yields one capture per message pack found in a continuous
// binary stream, such as a receiver writing raw packs to a serial port.
type StreamReader struct {
	r       io.Reader
	framer  *pack.Framer
	source  string
	logger  *logrus.Logger
	chunk   []byte
	pending [][]byte
	index   int
	err     error
}

// NewStreamReader creates a new pack-framing reader
func NewStreamReader(r io.Reader, source string, layout pack.Layout, logger *logrus.Logger) (*StreamReader, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	framer, err := pack.NewFramer(layout, logger)
	if err != nil {
		return nil, err
	}
	return &StreamReader{
		r:      r,
		framer: framer,
		source: source,
		logger: logger,
		chunk:  make([]byte, streamChunkSize),
	}, nil
}

// ReadCapture returns the next complete pack
func (s *StreamReader) ReadCapture() (*Capture, error) {
	for len(s.pending) == 0 {
		if s.err != nil {
			return nil, s.err
		}

		n, err := s.r.Read(s.chunk)
		if n > 0 {
			s.pending = append(s.pending, s.framer.Feed(s.chunk[:n])...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if buffered := s.framer.Buffered(); buffered > 0 {
					s.logger.WithFields(logrus.Fields{
						"source":   s.source,
						"buffered": buffered,
					}).Debug("Stream ended inside a message pack")
				}
				s.err = io.EOF
			} else {
				s.err = fmt.Errorf("failed to read %s: %w", s.source, err)
			}
		}
	}

	data := s.pending[0]
	s.pending = s.pending[1:]
	s.index++

	return &Capture{
		Data:   data,
		Source: s.source,
		Index:  s.index,
	}, nil
}
