package pack

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"

	"droneid/internal/odid"
)

// MaxPackMessages is the largest message count a framed pack may declare
const MaxPackMessages = 9

// maxBufferSize bounds buffered bytes that never form a pack
const maxBufferSize = 4096

// Framer cuts complete message packs out of a continuous byte stream where
// chunk boundaries need not line up with packs. Unlike Scanner it keeps the
// unconsumed tail between calls, so a Framer must not be shared.
type Framer struct {
	logger *logrus.Logger
	layout Layout
	buffer []byte
}

// NewFramer creates a new stream framer
func NewFramer(layout Layout, logger *logrus.Logger) (*Framer, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout %q: %w", layout.Name, err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Framer{
		logger: logger,
		layout: layout,
		buffer: make([]byte, 0, maxBufferSize),
	}, nil
}

// Buffered returns the number of bytes waiting for the rest of a pack
func (f *Framer) Buffered() int {
	return len(f.buffer)
}

// Feed appends data and returns every pack completed by it. Each returned
// slice starts at the marker and ends after the last declared message.
func (f *Framer) Feed(data []byte) [][]byte {
	f.buffer = append(f.buffer, data...)

	var packs [][]byte
	headerLen := f.layout.CountOffset + f.layout.CountWidth

	for {
		markerIndex := bytes.Index(f.buffer, Marker)
		if markerIndex == -1 {
			// keep a tail that may hold the start of a split marker
			keep := len(Marker) - 1
			if len(f.buffer) > keep {
				f.buffer = append(f.buffer[:0], f.buffer[len(f.buffer)-keep:]...)
			}
			break
		}

		// Remove data before the marker
		if markerIndex > 0 {
			f.buffer = f.buffer[markerIndex:]
		}

		if len(f.buffer) < headerLen {
			break
		}

		count, err := odid.ReadLE(f.buffer, f.layout.CountOffset, f.layout.CountWidth, false)
		if err != nil || count == 0 || count > MaxPackMessages {
			f.logger.WithFields(logrus.Fields{
				"declared_count": count,
				"layout":         f.layout.Name,
			}).Debug("Implausible message count, skipping marker")
			f.buffer = f.buffer[1:]
			continue
		}

		packLen := f.layout.PayloadOffset + int(count)*odid.MessageSize
		if len(f.buffer) < packLen {
			break
		}

		pack := make([]byte, packLen)
		copy(pack, f.buffer[:packLen])
		packs = append(packs, pack)

		f.logger.WithFields(logrus.Fields{
			"declared_count": count,
			"pack_length":    packLen,
			"buffer_size":    len(f.buffer),
		}).Debug("Framed message pack")

		f.buffer = f.buffer[packLen:]
	}

	// Keep buffer size reasonable
	if len(f.buffer) > maxBufferSize {
		f.logger.WithFields(logrus.Fields{
			"buffer_size": len(f.buffer),
		}).Debug("Stream buffer overflow, clearing")
		f.buffer = f.buffer[:0]
	}

	return packs
}
