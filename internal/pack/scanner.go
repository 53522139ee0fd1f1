package pack

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"droneid/internal/odid"
)

// ErrNoMarker is returned by ReadHeader when the stream has no marker
var ErrNoMarker = errors.New("pack: marker not found")

// Header describes a message pack found in a stream
type Header struct {
	MarkerOffset  int
	DeclaredCount uint16
	PayloadOffset int
}

// Scanner finds a message pack in a byte stream and slices it into messages.
// It keeps no state between calls.
type Scanner struct {
	logger *logrus.Logger
	layout Layout
}

// NewScanner creates a new message pack scanner
func NewScanner(layout Layout, logger *logrus.Logger) (*Scanner, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout %q: %w", layout.Name, err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scanner{
		logger: logger,
		layout: layout,
	}, nil
}

// Layout returns the layout the scanner was built with
func (s *Scanner) Layout() Layout {
	return s.layout
}

// FindMarker returns the offset of the first marker, or -1
func (s *Scanner) FindMarker(data []byte) int {
	return bytes.Index(data, Marker)
}

// ReadHeader locates the marker and reads the declared message count
func (s *Scanner) ReadHeader(data []byte) (*Header, error) {
	markerOffset := s.FindMarker(data)
	if markerOffset < 0 {
		return nil, ErrNoMarker
	}

	count, err := odid.ReadLE(data, markerOffset+s.layout.CountOffset, s.layout.CountWidth, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read message count: %w", err)
	}

	return &Header{
		MarkerOffset:  markerOffset,
		DeclaredCount: uint16(count),
		PayloadOffset: markerOffset + s.layout.PayloadOffset,
	}, nil
}

// Scan returns the messages of the first message pack in data. A stream
// without a marker, or with a truncated header, yields no messages and no
// error. Frames beyond the end of data are dropped.
func (s *Scanner) Scan(data []byte) ([]*odid.Message, error) {
	header, err := s.ReadHeader(data)
	if err != nil {
		if errors.Is(err, ErrNoMarker) {
			s.logger.WithFields(logrus.Fields{
				"data_length": len(data),
			}).Debug("No message pack marker found")
			return nil, nil
		}
		s.logger.WithError(err).WithFields(logrus.Fields{
			"data_length": len(data),
			"layout":      s.layout.Name,
		}).Debug("Message pack header truncated")
		return nil, nil
	}

	s.logger.WithFields(logrus.Fields{
		"marker_offset":  header.MarkerOffset,
		"declared_count": header.DeclaredCount,
		"payload_offset": header.PayloadOffset,
		"layout":         s.layout.Name,
	}).Debug("Found message pack")

	var payload []byte
	if header.PayloadOffset < len(data) {
		payload = data[header.PayloadOffset:]
	}

	messages := s.split(payload, int(header.DeclaredCount))
	if len(messages) < int(header.DeclaredCount) {
		s.logger.WithFields(logrus.Fields{
			"declared_count": header.DeclaredCount,
			"available":      len(messages),
		}).Debug("Message pack truncated")
	}
	return messages, nil
}

// ScanHex is Scan over hex text. Malformed hex returns an error wrapping odid.ErrFormat.
func (s *Scanner) ScanHex(text string) ([]*odid.Message, error) {
	data, err := odid.HexToBytes(text)
	if err != nil {
		return nil, err
	}
	return s.Scan(data)
}

// Split slices data into consecutive 25-byte messages without looking for a
// marker. A trailing partial message is dropped.
func (s *Scanner) Split(data []byte) []*odid.Message {
	return s.split(data, len(data)/odid.MessageSize)
}

func (s *Scanner) split(data []byte, limit int) []*odid.Message {
	var messages []*odid.Message

	for i := 0; i < limit; i++ {
		start := i * odid.MessageSize
		end := start + odid.MessageSize
		if end > len(data) {
			break
		}

		msg, err := odid.NewMessage(data[start:end])
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"index": i,
			}).Debug("Skipping message")
			continue
		}
		messages = append(messages, msg)
	}

	return messages
}
