package odid

// SelfID is a decoded Self ID message (type 3)
type SelfID struct {
	DescriptionType SelfIDType
	Description     string
}

// DecodeSelfID decodes a Self ID message
func DecodeSelfID(msg *Message) (*SelfID, error) {
	if msg == nil || msg.Type != MessageTypeSelfID {
		return nil, mismatch(MessageTypeSelfID, msg)
	}

	data := msg.Data[:]
	return &SelfID{
		DescriptionType: SelfIDType(data[1]),
		Description:     Cleaned(asciiField(data[2 : 2+StrSize])),
	}, nil
}

// MessageType implements Record
func (s *SelfID) MessageType() MessageType { return MessageTypeSelfID }
