package odid

import "fmt"

// Record is implemented by every decoded payload type
type Record interface {
	MessageType() MessageType
}

// Decode selects the payload decoder by message type
func Decode(msg *Message) (Record, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrTypeMismatch)
	}

	var (
		rec Record
		err error
	)
	switch msg.Type {
	case MessageTypeBasicID:
		var r *BasicID
		if r, err = DecodeBasicID(msg); err == nil {
			rec = r
		}
	case MessageTypeLocation:
		var r *Location
		if r, err = DecodeLocation(msg); err == nil {
			rec = r
		}
	case MessageTypeSelfID:
		var r *SelfID
		if r, err = DecodeSelfID(msg); err == nil {
			rec = r
		}
	case MessageTypeSystem:
		var r *System
		if r, err = DecodeSystem(msg); err == nil {
			rec = r
		}
	case MessageTypeOperatorID:
		var r *OperatorID
		if r, err = DecodeOperatorID(msg); err == nil {
			rec = r
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupported, msg.Type)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
