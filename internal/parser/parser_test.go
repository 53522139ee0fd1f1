package parser

import (
	"errors"
	"io"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droneid/internal/odid"
	"droneid/internal/pack"
)

const (
	beaconCaptureHex = "80000000FFFFFFFFFFFFE47A2C153401E47A2C153401000080C0704400000000A000200400185249442D313538314638374C5732353432303032334E564EDD53FA0BBC0D8CF119030112313538314638374C5732353432303032334E564E0000001132B5000070498B0DF896D4435F076208D0073B025B750A004108FFFFFF7FFFFFFF7F01000000000000013E08ECA9240D00007856AD"

	sampleBasicIDHex  = "0112313538314638374c5732353432303032334e564e000000"
	sampleLocationHex = "1132b5000070498b0df896d4435f076208d0073b025b750a00"
	sampleSystemHex   = "4108ffffff7fffffff7f01000000000000013e08eca9240d00"
)

func newTestParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)

	p, err := NewParser(logger, opts...)
	require.NoError(t, err)
	return p
}

// frameHex builds a 25-byte message as hex with the payload after byte 0
func frameHex(msgType odid.MessageType, payload ...byte) string {
	f := make([]byte, odid.MessageSize)
	f[0] = byte(msgType)<<4 | 0x02
	copy(f[1:], payload)
	return odid.BytesToHex(f)
}

// packHex wraps frames in the default message pack layout
func packHex(prefix string, count string, frames ...string) string {
	return prefix + "fa0bbc0d" + strings.Repeat("00", 10) + count + strings.Join(frames, "")
}

func TestNewParser(t *testing.T) {
	p, err := NewParser(nil)
	require.NoError(t, err)
	assert.Equal(t, pack.DefaultLayout, p.Layout())

	p, err = NewParser(nil, WithLayout(pack.BeaconLayout))
	require.NoError(t, err)
	assert.Equal(t, pack.BeaconLayout, p.Layout())

	_, err = NewParser(nil, WithLayout(pack.Layout{Name: "broken"}))
	assert.Error(t, err)
}

func TestParseHex_ThreeMessagePack(t *testing.T) {
	p := newTestParser(t)

	text := packHex("0102", "0300",
		frameHex(odid.MessageTypeBasicID, 0x12, 'A', 'B'),
		frameHex(odid.MessageTypeLocation, 0x20),
		frameHex(odid.MessageTypeSystem, 0x04),
	)

	result, err := p.ParseHex(text)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalMessages())
	assert.Len(t, result.BasicIDs, 1)
	assert.Len(t, result.Locations, 1)
	assert.Len(t, result.Systems, 1)
	assert.Empty(t, result.SelfIDs)
	assert.Empty(t, result.OperatorIDs)
	assert.Equal(t, 3, result.TotalRecords())
	assert.Equal(t, 0, result.Skipped)

	assert.Equal(t, "AB", result.FirstBasicID().UASID)
	assert.Equal(t, odid.StatusAirborne, result.FirstLocation().Status)
	assert.Equal(t, odid.ClassificationEuropeanUnion, result.FirstSystem().ClassificationType)
}

func TestParseHex_SerialNumberID(t *testing.T) {
	p := newTestParser(t)

	payload := append([]byte{0x12}, []byte("TEST1234567890123456")...)
	result, err := p.ParseHex(packHex("", "0100", frameHex(odid.MessageTypeBasicID, payload...)))
	require.NoError(t, err)

	basic := result.FirstBasicID()
	require.NotNil(t, basic)
	assert.Equal(t, odid.IDTypeSerialNumber, basic.IDType)
	assert.Equal(t, odid.UATypeHelicopterOrMultirotor, basic.UAType)
	assert.Equal(t, "TEST1234567890123456", basic.UASID)
	assert.False(t, strings.ContainsRune(basic.UASID, 0))
}

func TestParse_NoMarker(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "Nil", data: nil},
		{name: "Frames only", data: append(make([]byte, 25), make([]byte, 25)...)},
		{name: "Partial marker", data: []byte{0xFA, 0x0B, 0xBC, 0x0C, 0x03, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.Parse(tt.data)
			require.NotNil(t, result)
			assert.Equal(t, 0, result.TotalMessages())
			assert.False(t, result.HasMessages())
			assert.True(t, result.IsEmpty())
		})
	}

	result, err := p.ParseHex("0011 2233 4455")
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalMessages())
}

func TestParseHex_Malformed(t *testing.T) {
	p := newTestParser(t)

	result, err := p.ParseHex("fa0bbc0d1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, odid.ErrFormat))
	assert.Nil(t, result)

	_, err = p.ParseMessagesHex("abc")
	assert.True(t, errors.Is(err, odid.ErrFormat))
}

func TestParse_TruncatedPack(t *testing.T) {
	p := newTestParser(t)

	full := packHex("", "0400",
		frameHex(odid.MessageTypeBasicID, 0x12),
		frameHex(odid.MessageTypeSelfID, 0x00, 'h', 'i'),
		frameHex(odid.MessageTypeOperatorID, 0x00, 'o', 'p'),
	)
	// Drop the last 10 bytes of the third message
	result, err := p.ParseHex(full[:len(full)-20])
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalMessages())
	assert.Len(t, result.BasicIDs, 1)
	require.Len(t, result.SelfIDs, 1)
	assert.Equal(t, "hi", result.SelfIDs[0].Description)
	assert.Empty(t, result.OperatorIDs)
}

func TestParse_SkipsUndecodable(t *testing.T) {
	p := newTestParser(t)

	result, err := p.ParseHex(packHex("", "0400",
		frameHex(odid.MessageTypeAuth, 0x00),
		frameHex(odid.MessageType(9), 0x00),
		frameHex(odid.MessageTypeOperatorID, 0x00, 'X'),
		frameHex(odid.MessageTypePacked, 0x19, 0x01),
	))
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalMessages())
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 1, result.TotalRecords())
	assert.Equal(t, "X", result.FirstOperatorID().OperatorID)
	assert.Equal(t, odid.MessageType(9), result.Messages[1].Type)
	assert.False(t, result.Messages[1].Type.Known())
}

func TestParse_BeaconCapture(t *testing.T) {
	p := newTestParser(t, WithLayout(pack.BeaconLayout))

	result, err := p.ParseHex(beaconCaptureHex)
	require.NoError(t, err)
	require.Equal(t, 3, result.TotalMessages())

	basic := result.FirstBasicID()
	require.NotNil(t, basic)
	assert.Equal(t, odid.IDTypeSerialNumber, basic.IDType)
	assert.Equal(t, odid.UATypeHelicopterOrMultirotor, basic.UAType)
	assert.Equal(t, "1581F87LW25420023NVN", basic.UASID)

	loc := result.FirstLocation()
	require.NotNil(t, loc)
	assert.Equal(t, odid.StatusEmergency, loc.Status)
	assert.Equal(t, uint8(181), loc.Direction)
	assert.InDelta(t, 22.7232112, loc.Latitude, 1e-7)
	assert.InDelta(t, 113.8005752, loc.Longitude, 1e-7)
	assert.Equal(t, -56.5, loc.AltitudeBaro)
	assert.Equal(t, 73.0, loc.AltitudeGeo)
	assert.Equal(t, "50:04.3", loc.Timestamp)

	sys := result.FirstSystem()
	require.NotNil(t, sys)
	assert.Equal(t, -1000.0, sys.AreaCeiling)
	assert.Equal(t, -1000.0, sys.AreaFloor)
	assert.Equal(t, 55.0, sys.OperatorAltitude)
	assert.Equal(t, time.Date(2025, 12, 27, 3, 50, 4, 0, time.UTC), sys.Timestamp)

	// Under the default layout the count is read from the ID text and only
	// two whole frames fit after marker+16.
	def := newTestParser(t)
	other, err := def.ParseHex(beaconCaptureHex)
	require.NoError(t, err)
	assert.Equal(t, 2, other.TotalMessages())
}

func TestParseMessage(t *testing.T) {
	p := newTestParser(t)

	buf, err := odid.HexToBytes(sampleLocationHex)
	require.NoError(t, err)

	msg, err := p.ParseMessage(buf)
	require.NoError(t, err)
	assert.Equal(t, odid.MessageTypeLocation, msg.Type)
	assert.Equal(t, uint8(1), msg.ProtocolVersion)

	for n := 0; n < odid.MessageSize; n++ {
		msg, err := p.ParseMessage(buf[:n])
		assert.Nil(t, msg)
		assert.True(t, errors.Is(err, odid.ErrBounds))
	}
}

func TestParseMessages_Direct(t *testing.T) {
	p := newTestParser(t)

	result, err := p.ParseMessagesHex(sampleBasicIDHex + sampleLocationHex + sampleSystemHex + "0102")
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalMessages())
	assert.Equal(t, 3, result.TotalRecords())
	assert.Equal(t, "1581F87LW25420023NVN", result.FirstBasicID().UASID)

	records := result.Records()
	require.Len(t, records, 3)
	assert.Equal(t, odid.MessageTypeBasicID, records[0].MessageType())
	assert.Equal(t, odid.MessageTypeLocation, records[1].MessageType())
	assert.Equal(t, odid.MessageTypeSystem, records[2].MessageType())

	empty := p.ParseMessages(make([]byte, 24))
	assert.False(t, empty.HasMessages())
}

func TestResult_FirstOnEmpty(t *testing.T) {
	r := &Result{}
	assert.Nil(t, r.FirstBasicID())
	assert.Nil(t, r.FirstLocation())
	assert.Nil(t, r.FirstSelfID())
	assert.Nil(t, r.FirstSystem())
	assert.Nil(t, r.FirstOperatorID())
	assert.Empty(t, r.Records())
	assert.True(t, r.IsEmpty())
}

func TestResult_Merge(t *testing.T) {
	p := newTestParser(t)

	a, err := p.ParseMessagesHex(sampleBasicIDHex)
	require.NoError(t, err)
	b, err := p.ParseMessagesHex(sampleLocationHex + frameHex(odid.MessageTypeAuth))
	require.NoError(t, err)

	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, 3, a.TotalMessages())
	assert.Equal(t, 2, a.TotalRecords())
	assert.Equal(t, 1, a.Skipped)
	require.Len(t, a.Records(), 2)
	assert.Equal(t, odid.MessageTypeLocation, a.Records()[1].MessageType())
}

func TestParse_HorizontalSpeedSentinel(t *testing.T) {
	p := newTestParser(t)

	result, err := p.ParseMessagesHex(frameHex(odid.MessageTypeLocation, 0x20, 0, 255, 126))
	require.NoError(t, err)

	loc := result.FirstLocation()
	require.NotNil(t, loc)
	assert.True(t, math.IsNaN(loc.SpeedHorizontal))
	assert.True(t, math.IsNaN(loc.SpeedVertical))
}

func TestParser_ConcurrentUse(t *testing.T) {
	p := newTestParser(t, WithLayout(pack.BeaconLayout))

	var wg sync.WaitGroup
	counts := make([]int, 16)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := p.ParseHex(beaconCaptureHex)
			if err == nil {
				counts[i] = result.TotalRecords()
			}
		}(i)
	}
	wg.Wait()

	for _, c := range counts {
		assert.Equal(t, 3, c)
	}
}
