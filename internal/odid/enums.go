package odid

import "fmt"

// Every enum below keeps the raw wire value. Values without a defined case
// report Known() == false and print as Unknown(n).

func enumString(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("Unknown(%d)", v)
}

// MessageType is the high nibble of byte 0
type MessageType uint8

const (
	MessageTypeBasicID    MessageType = 0
	MessageTypeLocation   MessageType = 1
	MessageTypeAuth       MessageType = 2
	MessageTypeSelfID     MessageType = 3
	MessageTypeSystem     MessageType = 4
	MessageTypeOperatorID MessageType = 5
	MessageTypePacked     MessageType = 0xF
)

var messageTypeNames = []string{"BasicID", "Location", "Auth", "SelfID", "System", "OperatorID"}

func (t MessageType) Known() bool {
	return t <= MessageTypeOperatorID || t == MessageTypePacked
}

func (t MessageType) String() string {
	if t == MessageTypePacked {
		return "Packed"
	}
	return enumString(messageTypeNames, uint8(t))
}

// IDType identifies the kind of UAS ID carried by a Basic ID message
type IDType uint8

const (
	IDTypeNone              IDType = 0
	IDTypeSerialNumber      IDType = 1
	IDTypeCAARegistrationID IDType = 2
	IDTypeUTMAssignedUUID   IDType = 3
	IDTypeSpecificSessionID IDType = 4
)

var idTypeNames = []string{"None", "SerialNumber", "CAARegistrationID", "UTMAssignedUUID", "SpecificSessionID"}

func (t IDType) Known() bool    { return t <= IDTypeSpecificSessionID }
func (t IDType) String() string { return enumString(idTypeNames, uint8(t)) }

// UAType is the aircraft category. All 16 nibble values are defined.
type UAType uint8

const (
	UATypeNone UAType = iota
	UATypeAeroplane
	UATypeHelicopterOrMultirotor
	UATypeGyroplane
	UATypeHybridLift
	UATypeOrnithopter
	UATypeGlider
	UATypeKite
	UATypeFreeBalloon
	UATypeCaptiveBalloon
	UATypeAirship
	UATypeFreeFallOrParachute
	UATypeRocket
	UATypeTetheredPoweredAircraft
	UATypeGroundObstacle
	UATypeOther
)

var uaTypeNames = []string{
	"None", "Aeroplane", "HelicopterOrMultirotor", "Gyroplane", "HybridLift",
	"Ornithopter", "Glider", "Kite", "FreeBalloon", "CaptiveBalloon", "Airship",
	"FreeFallOrParachute", "Rocket", "TetheredPoweredAircraft", "GroundObstacle", "Other",
}

func (t UAType) Known() bool    { return t <= UATypeOther }
func (t UAType) String() string { return enumString(uaTypeNames, uint8(t)) }

// LocationStatus is the operational status from a Location message
type LocationStatus uint8

const (
	StatusUndeclared            LocationStatus = 0
	StatusGround                LocationStatus = 1
	StatusAirborne              LocationStatus = 2
	StatusEmergency             LocationStatus = 3
	StatusRemoteIDSystemFailure LocationStatus = 4
)

var statusNames = []string{"Undeclared", "Ground", "Airborne", "Emergency", "RemoteIDSystemFailure"}

func (s LocationStatus) Known() bool    { return s <= StatusRemoteIDSystemFailure }
func (s LocationStatus) String() string { return enumString(statusNames, uint8(s)) }

// HeightType is the reference for Location.Height
type HeightType uint8

const (
	HeightAboveTakeoff     HeightType = 0
	HeightAboveGroundLevel HeightType = 1
)

var heightTypeNames = []string{"AboveTakeoff", "AboveGroundLevel"}

func (h HeightType) Known() bool    { return h <= HeightAboveGroundLevel }
func (h HeightType) String() string { return enumString(heightTypeNames, uint8(h)) }

// SelfIDType is the description type of a Self ID message
type SelfIDType uint8

const (
	SelfIDText           SelfIDType = 0
	SelfIDEmergency      SelfIDType = 1
	SelfIDExtendedStatus SelfIDType = 2
)

var selfIDTypeNames = []string{"Text", "Emergency", "ExtendedStatus"}

func (t SelfIDType) Known() bool    { return t <= SelfIDExtendedStatus }
func (t SelfIDType) String() string { return enumString(selfIDTypeNames, uint8(t)) }

// ClassificationType is the System message classification region
type ClassificationType uint8

const (
	ClassificationUndeclared    ClassificationType = 0
	ClassificationEuropeanUnion ClassificationType = 1
)

var classificationNames = []string{"Undeclared", "EuropeanUnion"}

func (c ClassificationType) Known() bool    { return c <= ClassificationEuropeanUnion }
func (c ClassificationType) String() string { return enumString(classificationNames, uint8(c)) }

// OperatorLocationType is the source of the operator position
type OperatorLocationType uint8

const (
	OperatorLocationTakeOff OperatorLocationType = 0
	OperatorLocationDynamic OperatorLocationType = 1
	OperatorLocationFixed   OperatorLocationType = 2
)

var operatorLocationNames = []string{"TakeOff", "Dynamic", "Fixed"}

func (o OperatorLocationType) Known() bool    { return o <= OperatorLocationFixed }
func (o OperatorLocationType) String() string { return enumString(operatorLocationNames, uint8(o)) }

// UACategory is the EU UA category
type UACategory uint8

const (
	CategoryUndefined UACategory = 0
	CategoryOpen      UACategory = 1
	CategorySpecific  UACategory = 2
	CategoryCertified UACategory = 3
)

var categoryNames = []string{"Undefined", "Open", "Specific", "Certified"}

func (c UACategory) Known() bool    { return c <= CategoryCertified }
func (c UACategory) String() string { return enumString(categoryNames, uint8(c)) }

// UAClass is the EU UA class
type UAClass uint8

const (
	ClassUndefined UAClass = iota
	Class0
	Class1
	Class2
	Class3
	Class4
	Class5
	Class6
)

var classNames = []string{"Undefined", "Class0", "Class1", "Class2", "Class3", "Class4", "Class5", "Class6"}

func (c UAClass) Known() bool    { return c <= Class6 }
func (c UAClass) String() string { return enumString(classNames, uint8(c)) }

// OperatorIDType is the type byte of an Operator ID message
type OperatorIDType uint8

const (
	OperatorIDTypeOperatorID OperatorIDType = 0
)

var operatorIDTypeNames = []string{"OperatorID"}

func (t OperatorIDType) Known() bool    { return t == OperatorIDTypeOperatorID }
func (t OperatorIDType) String() string { return enumString(operatorIDTypeNames, uint8(t)) }
