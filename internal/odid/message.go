package odid

import "fmt"

// Message is a single classified 25-byte ODID message
type Message struct {
	Type            MessageType
	ProtocolVersion uint8
	Data            [MessageSize]byte
}

// NewMessage classifies the first 25 bytes of buf. Extra bytes are ignored.
func NewMessage(buf []byte) (*Message, error) {
	if len(buf) < MessageSize {
		return nil, fmt.Errorf("%w: message too short: %d bytes", ErrBounds, len(buf))
	}

	msg := &Message{
		Type:            MessageType(buf[0] >> 4),
		ProtocolVersion: buf[0] & 0x0F,
	}
	copy(msg.Data[:], buf[:MessageSize])
	return msg, nil
}

// GetType returns the message type from the high nibble of byte 0
func (msg *Message) GetType() MessageType {
	return msg.Type
}

// GetProtocolVersion returns the protocol version from the low nibble of byte 0
func (msg *Message) GetProtocolVersion() uint8 {
	return msg.ProtocolVersion
}

// Bytes returns a copy of the raw message
func (msg *Message) Bytes() []byte {
	out := make([]byte, MessageSize)
	copy(out, msg.Data[:])
	return out
}

// Hex returns the raw message as lowercase hex
func (msg *Message) Hex() string {
	return BytesToHex(msg.Data[:])
}
