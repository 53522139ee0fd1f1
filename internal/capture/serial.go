package capture

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// DefaultBaudRate suits the common ESP32 Remote ID sniffer firmware
const DefaultBaudRate = 115200

// OpenSerial opens a receiver that prints one hex capture per line
func OpenSerial(device string, baudRate int) (io.ReadCloser, error) {
	if device == "" {
		return nil, fmt.Errorf("no serial device (e.g., /dev/ttyUSB0 or COM3) provided")
	}
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
	}
	return port, nil
}
