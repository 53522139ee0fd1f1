package pack

import (
	"fmt"
	"strings"
)

// Marker is the byte sequence that precedes a message pack
var Marker = []byte{0xFA, 0x0B, 0xBC, 0x0D}

// Layout locates the count field and the first message relative to the marker
type Layout struct {
	Name          string
	CountOffset   int // offset of the declared message count from the marker start
	CountWidth    int // width of the count field in bytes, little-endian
	PayloadOffset int // offset of the first message from the marker start
}

var (
	// DefaultLayout reads a uint16 count at marker+14 and messages from marker+16
	DefaultLayout = Layout{Name: "default", CountOffset: 14, CountWidth: 2, PayloadOffset: 16}

	// BeaconLayout matches a Wi-Fi beacon vendor element:
	// FA 0B BC | 0D | counter | F1 19 | count | messages...
	BeaconLayout = Layout{Name: "beacon", CountOffset: 7, CountWidth: 1, PayloadOffset: 8}
)

// LayoutByName returns a predefined layout
func LayoutByName(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DefaultLayout.Name:
		return DefaultLayout, nil
	case BeaconLayout.Name:
		return BeaconLayout, nil
	default:
		return Layout{}, fmt.Errorf("unknown pack layout: %s", name)
	}
}

// Validate checks that the layout can be used for scanning
func (l Layout) Validate() error {
	if l.CountWidth < 1 || l.CountWidth > 2 {
		return fmt.Errorf("count width must be 1 or 2 bytes, got %d", l.CountWidth)
	}
	if l.CountOffset < 0 || l.PayloadOffset < 0 {
		return fmt.Errorf("offsets must not be negative")
	}
	if l.PayloadOffset < l.CountOffset+l.CountWidth {
		return fmt.Errorf("payload offset %d overlaps count field at %d", l.PayloadOffset, l.CountOffset)
	}
	return nil
}
