package odid

import "fmt"

// BasicID is a decoded Basic ID message (type 0)
type BasicID struct {
	IDType IDType
	UAType UAType
	UASID  string
}

// DecodeBasicID decodes a Basic ID message.
//
// Layout: byte 1 high nibble ID type, low nibble UA type; bytes 2-21 ASCII ID.
func DecodeBasicID(msg *Message) (*BasicID, error) {
	if msg == nil || msg.Type != MessageTypeBasicID {
		return nil, mismatch(MessageTypeBasicID, msg)
	}

	data := msg.Data[:]
	return &BasicID{
		IDType: IDType(data[1] >> 4),
		UAType: UAType(data[1] & 0x0F),
		UASID:  CleanedForSerialNumber(asciiField(data[2 : 2+IDSize])),
	}, nil
}

// MessageType implements Record
func (b *BasicID) MessageType() MessageType { return MessageTypeBasicID }

func mismatch(want MessageType, msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: nil message, want %s", ErrTypeMismatch, want)
	}
	return fmt.Errorf("%w: got %s, want %s", ErrTypeMismatch, msg.Type, want)
}
