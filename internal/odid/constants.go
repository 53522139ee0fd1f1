package odid

// Message layout constants
const (
	MessageSize = 25 // every ODID message is exactly 25 bytes
	IDSize      = 20 // UAS ID and operator ID field width
	StrSize     = 23 // self-ID description field width
)

// Scaling constants shared by the payload decoders
const (
	LatLonMultiplier   = 10000000.0 // lat/lon are int32 in 1e-7 degrees
	AltitudeOffset     = 2000       // altitude encoding offset (0.5 m units)
	AltitudeScale      = 2.0        // altitude units per metre
	SpeedHorizontalLSB = 0.75       // m/s per raw unit
	SpeedVerticalLSB   = 0.5        // m/s per raw unit
	SpeedMultiplierAdd = 255 * 0.25 // added to horizontal speed when the multiplier flag is set

	SpeedHorizontalInvalid = 255  // raw horizontal speed meaning "unknown"
	SpeedVerticalInvalid   = 63.0 // scaled vertical speed meaning "unknown"
)

// SystemEpochOffset is the Unix time of 2019-01-01T00:00:00Z. System message
// timestamps count seconds from this instant.
const SystemEpochOffset = 1546300800
