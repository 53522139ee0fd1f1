package capture

import (
	"bufio"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"droneid/internal/odid"
)

// maxLineSize bounds a single hex line; a full beacon is well under 8 KiB of hex
const maxLineSize = 64 * 1024

// HexReader reads one capture per line of hex text. Blank lines and lines
// starting with '#' are ignored; malformed or overlong lines are logged and
// skipped.
type HexReader struct {
	reader *bufio.Reader
	source string
	logger *logrus.Logger
	line   int
	index  int
}

// NewHexReader creates a new line-oriented hex reader
func NewHexReader(r io.Reader, source string, logger *logrus.Logger) *HexReader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &HexReader{
		reader: bufio.NewReaderSize(r, 4096),
		source: source,
		logger: logger,
	}
}

// ReadCapture returns the next well-formed line
func (h *HexReader) ReadCapture() (*Capture, error) {
	for {
		raw, tooLong, err := h.readLine()
		if err != nil {
			return nil, err
		}
		h.line++

		if tooLong {
			h.logger.WithFields(logrus.Fields{
				"source": h.source,
				"line":   h.line,
				"limit":  maxLineSize,
			}).Warn("Skipping overlong hex line")
			continue
		}

		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		data, err := odid.HexToBytes(text)
		if err != nil {
			h.logger.WithError(err).WithFields(logrus.Fields{
				"source": h.source,
				"line":   h.line,
			}).Warn("Skipping malformed hex line")
			continue
		}

		h.index++
		return &Capture{
			Data:   data,
			Source: h.source,
			Index:  h.index,
		}, nil
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLineSize is consumed to its end and reported with tooLong set.
func (h *HexReader) readLine() (line string, tooLong bool, err error) {
	var buf []byte
	started := false

	for {
		chunk, isPrefix, readErr := h.reader.ReadLine()
		if readErr != nil {
			if started {
				return string(buf), tooLong, nil
			}
			return "", false, readErr
		}
		started = true

		if !tooLong {
			if len(buf)+len(chunk) > maxLineSize {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}
