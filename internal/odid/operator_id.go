package odid

// OperatorID is a decoded Operator ID message (type 5)
type OperatorID struct {
	OperatorIDType OperatorIDType
	OperatorID     string
}

// DecodeOperatorID decodes an Operator ID message
func DecodeOperatorID(msg *Message) (*OperatorID, error) {
	if msg == nil || msg.Type != MessageTypeOperatorID {
		return nil, mismatch(MessageTypeOperatorID, msg)
	}

	data := msg.Data[:]
	return &OperatorID{
		OperatorIDType: OperatorIDType(data[1]),
		OperatorID:     Cleaned(asciiField(data[2 : 2+IDSize])),
	}, nil
}

// MessageType implements Record
func (o *OperatorID) MessageType() MessageType { return MessageTypeOperatorID }
