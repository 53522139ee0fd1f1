package odid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildFrame returns a 25-byte message with the given header and payload
// starting at byte 1. Remaining bytes are zero.
func buildFrame(msgType MessageType, version uint8, payload ...byte) []byte {
	frame := make([]byte, MessageSize)
	frame[0] = byte(msgType)<<4 | version&0x0F
	copy(frame[1:], payload)
	return frame
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := HexToBytes(s)
	require.NoError(t, err)
	return b
}

func mustMessage(t *testing.T, buf []byte) *Message {
	t.Helper()
	msg, err := NewMessage(buf)
	require.NoError(t, err)
	return msg
}

// Frames taken from a Wi-Fi beacon capture of a multirotor.
const (
	sampleBasicIDHex  = "0112313538314638374c5732353432303032334e564e000000"
	sampleLocationHex = "1132b5000070498b0df896d4435f076208d0073b025b750a00"
	sampleSystemHex   = "4108ffffff7fffffff7f01000000000000013e08eca9240d00"
)
