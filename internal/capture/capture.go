package capture

import (
	"fmt"
	"strings"
	"time"
)

// Input formats
const (
	FormatHex    = "hex"
	FormatBinary = "binary"
	FormatPCAP   = "pcap"
	FormatStream = "stream" // raw bytes framed into message packs
)

// Capture is one chunk of received bytes handed to the parser
type Capture struct {
	Data        []byte
	Source      string    // file name, device or "stdin"
	Index       int       // position within the source, starting at 1
	Timestamp   time.Time // capture time when the source records one
	Transmitter string    // 802.11 transmitter address, pcap only
}

// Reader yields captures until io.EOF
type Reader interface {
	ReadCapture() (*Capture, error)
}

// ValidateFormat checks an input format name
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatHex, FormatBinary, FormatPCAP, FormatStream:
		return nil
	default:
		return fmt.Errorf("unknown input format: %s", format)
	}
}
