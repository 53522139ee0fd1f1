package odid

import "time"

// System is a decoded System message (type 4)
type System struct {
	ClassificationType   ClassificationType
	OperatorLocationType OperatorLocationType

	OperatorLatitude  float64
	OperatorLongitude float64

	AreaCount   uint16
	AreaRadius  uint8
	AreaCeiling float64 // metres
	AreaFloor   float64 // metres

	UACategory UACategory
	UAClass    UAClass

	OperatorAltitude float64 // metres

	Timestamp    time.Time // UTC
	TimestampRaw uint32    // seconds since 2019-01-01T00:00:00Z
}

// DecodeSystem decodes a System message
func DecodeSystem(msg *Message) (*System, error) {
	if msg == nil || msg.Type != MessageTypeSystem {
		return nil, mismatch(MessageTypeSystem, msg)
	}

	data := msg.Data[:]
	flags := data[1]

	sys := &System{
		OperatorLocationType: OperatorLocationType(flags & 0x03),
		ClassificationType:   ClassificationType((flags >> 2) & 0x03),
		AreaRadius:           data[12],
		UACategory:           UACategory((data[17] >> 4) & 0x0F),
		UAClass:              UAClass(data[17] & 0x0F),
	}

	lat, err := Int32LE(data, 2)
	if err != nil {
		return nil, err
	}
	lon, err := Int32LE(data, 6)
	if err != nil {
		return nil, err
	}
	sys.OperatorLatitude = decodeLatLon(lat)
	sys.OperatorLongitude = decodeLatLon(lon)

	if sys.AreaCount, err = Uint16LE(data, 10); err != nil {
		return nil, err
	}

	ceiling, err := Int16LE(data, 13)
	if err != nil {
		return nil, err
	}
	floor, err := Int16LE(data, 15)
	if err != nil {
		return nil, err
	}
	sys.AreaCeiling = decodeAltitude(int(ceiling))
	sys.AreaFloor = decodeAltitude(int(floor))

	opAlt, err := Int16LE(data, 18)
	if err != nil {
		return nil, err
	}
	sys.OperatorAltitude = decodeAltitude(int(opAlt))

	if sys.TimestampRaw, err = Uint32LE(data, 20); err != nil {
		return nil, err
	}
	sys.Timestamp = SystemTime(sys.TimestampRaw)

	return sys, nil
}

// MessageType implements Record
func (s *System) MessageType() MessageType { return MessageTypeSystem }

// SystemTime converts a System message timestamp to UTC
func SystemTime(raw uint32) time.Time {
	return time.Unix(int64(raw)+SystemEpochOffset, 0).UTC()
}
