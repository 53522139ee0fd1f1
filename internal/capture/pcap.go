package capture

import (
	"fmt"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/sirupsen/logrus"
)

// PCAPReader yields every packet of a pcap file as a capture. Wi-Fi beacons
// carry the message pack in a vendor element, so the whole frame is passed on
// and the parser locates the marker.
type PCAPReader struct {
	reader   *pcapgo.Reader
	linkType layers.LinkType
	source   string
	logger   *logrus.Logger
	index    int
}

// NewPCAPReader reads the pcap file header from r
func NewPCAPReader(r io.Reader, source string, logger *logrus.Logger) (*PCAPReader, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open pcap %s: %w", source, err)
	}

	logger.WithFields(logrus.Fields{
		"source":    source,
		"link_type": reader.LinkType().String(),
	}).Debug("Opened pcap capture")

	return &PCAPReader{
		reader:   reader,
		linkType: reader.LinkType(),
		source:   source,
		logger:   logger,
	}, nil
}

// ReadCapture returns the next packet
func (p *PCAPReader) ReadCapture() (*Capture, error) {
	data, ci, err := p.reader.ReadPacketData()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read packet %d from %s: %w", p.index+1, p.source, err)
	}
	p.index++

	return &Capture{
		Data:        data,
		Source:      p.source,
		Index:       p.index,
		Timestamp:   ci.Timestamp,
		Transmitter: p.transmitter(data),
	}, nil
}

// transmitter returns the 802.11 source address when the link type carries one
func (p *PCAPReader) transmitter(data []byte) string {
	if p.linkType != layers.LinkTypeIEEE802_11 && p.linkType != layers.LinkTypeIEEE80211Radio {
		return ""
	}

	packet := gopacket.NewPacket(data, p.linkType, gopacket.NoCopy)
	dot11, ok := packet.Layer(layers.LayerTypeDot11).(*layers.Dot11)
	if !ok || dot11 == nil {
		return ""
	}
	return dot11.Address2.String()
}
