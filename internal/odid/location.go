package odid

import (
	"fmt"
	"math"
)

// Location is a decoded Location/Vector message (type 1)
type Location struct {
	Status          LocationStatus
	SpeedMultiplier uint8
	EWDirection     uint8
	HeightType      HeightType
	Direction       uint8

	SpeedHorizontal float64 // m/s, NaN when unknown
	SpeedVertical   float64 // m/s, NaN when unknown

	Latitude     float64
	Longitude    float64
	AltitudeBaro float64 // metres
	AltitudeGeo  float64 // metres
	Height       float64 // metres

	HorizontalAccuracy uint8
	VerticalAccuracy   uint8
	BaroAccuracy       uint8
	SpeedAccuracy      uint8

	Timestamp         string // MM:SS.T past the hour
	TimestampRaw      uint16 // tenths of seconds past the hour
	TimestampAccuracy uint8
}

// DecodeLocation decodes a Location message
func DecodeLocation(msg *Message) (*Location, error) {
	if msg == nil || msg.Type != MessageTypeLocation {
		return nil, mismatch(MessageTypeLocation, msg)
	}

	data := msg.Data[:]
	flags := data[1]

	loc := &Location{
		Status:          LocationStatus((flags >> 4) & 0x0F),
		SpeedMultiplier: flags & 0x01,
		EWDirection:     (flags >> 1) & 0x01,
		HeightType:      HeightType((flags >> 2) & 0x01),
		Direction:       data[2],
	}
	loc.SpeedHorizontal = decodeSpeedHorizontal(data[3], loc.SpeedMultiplier)
	loc.SpeedVertical = decodeSpeedVertical(data[4])

	lat, err := Int32LE(data, 5)
	if err != nil {
		return nil, err
	}
	lon, err := Int32LE(data, 9)
	if err != nil {
		return nil, err
	}
	loc.Latitude = decodeLatLon(lat)
	loc.Longitude = decodeLatLon(lon)

	altBaro, err := Uint16LE(data, 13)
	if err != nil {
		return nil, err
	}
	altGeo, err := Uint16LE(data, 15)
	if err != nil {
		return nil, err
	}
	height, err := Uint16LE(data, 17)
	if err != nil {
		return nil, err
	}
	loc.AltitudeBaro = decodeAltitude(int(altBaro))
	loc.AltitudeGeo = decodeAltitude(int(altGeo))
	loc.Height = decodeAltitude(int(height))

	loc.HorizontalAccuracy = data[19] & 0x0F
	loc.VerticalAccuracy = (data[19] >> 4) & 0x0F
	loc.BaroAccuracy = (data[20] >> 4) & 0x0F
	loc.SpeedAccuracy = data[20] & 0x0F

	ts, err := Uint16LE(data, 21)
	if err != nil {
		return nil, err
	}
	loc.TimestampRaw = ts
	loc.Timestamp = FormatTenths(ts)
	loc.TimestampAccuracy = data[23] & 0x0F

	return loc, nil
}

// MessageType implements Record
func (l *Location) MessageType() MessageType { return MessageTypeLocation }

func decodeSpeedHorizontal(raw uint8, multiplier uint8) float64 {
	if raw == SpeedHorizontalInvalid {
		return math.NaN()
	}
	speed := float64(raw) * SpeedHorizontalLSB
	if multiplier == 1 {
		speed += SpeedMultiplierAdd
	}
	return speed
}

// The sentinel is checked on the scaled value (raw 126), not on the raw byte.
func decodeSpeedVertical(raw uint8) float64 {
	speed := float64(raw) * SpeedVerticalLSB
	if speed == SpeedVerticalInvalid {
		return math.NaN()
	}
	return speed
}

func decodeLatLon(raw int32) float64 {
	return float64(raw) / LatLonMultiplier
}

func decodeAltitude(raw int) float64 {
	return float64(raw-AltitudeOffset) / AltitudeScale
}

// FormatTenths renders tenths of seconds past the hour as MM:SS.T
func FormatTenths(raw uint16) string {
	minutes := int(raw) / 600
	rest := int(raw) - minutes*600
	return fmt.Sprintf("%02d:%02d.%d", minutes, rest/10, rest%10)
}
