package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"droneid/internal/capture"
	"droneid/internal/pack"
	"droneid/internal/report"
)

// Default configuration constants
const (
	DefaultInputFormat  = capture.FormatHex
	DefaultOutputFormat = report.FormatText
	DefaultLayout       = "default"
	DefaultBaudRate     = capture.DefaultBaudRate
)

// Flag names, shared with the config file keys
const (
	FlagInput   = "input"
	FlagFormat  = "format"
	FlagSerial  = "serial"
	FlagBaud    = "baud"
	FlagLayout  = "layout"
	FlagDirect  = "direct"
	FlagOutput  = "output"
	FlagVerbose = "verbose"
)

// Config holds application configuration
type Config struct {
	Input        string `toml:"input"`  // file path, "" or "-" for stdin
	InputFormat  string `toml:"format"` // hex, binary, pcap or stream
	SerialDevice string `toml:"serial"`
	BaudRate     int    `toml:"baud"`
	Layout       string `toml:"layout"` // message pack layout name
	Direct       bool   `toml:"direct"` // decode input as back-to-back frames
	Output       string `toml:"output"` // text or json
	Verbose      bool   `toml:"verbose"`

	ConfigFile  string `toml:"-"`
	ShowVersion bool   `toml:"-"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		InputFormat: DefaultInputFormat,
		BaudRate:    DefaultBaudRate,
		Layout:      DefaultLayout,
		Output:      DefaultOutputFormat,
	}
}

// LoadConfig reads a TOML config file on top of the defaults
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}

	meta, err := toml.Decode(string(data), &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return conf, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}

	conf.ConfigFile = path
	return conf, nil
}

// MergeConfig overlays the flags the user set explicitly onto a loaded file config
func MergeConfig(file, flags Config, changed func(name string) bool) Config {
	merged := file

	if changed(FlagInput) {
		merged.Input = flags.Input
	}
	if changed(FlagFormat) {
		merged.InputFormat = flags.InputFormat
	}
	if changed(FlagSerial) {
		merged.SerialDevice = flags.SerialDevice
	}
	if changed(FlagBaud) {
		merged.BaudRate = flags.BaudRate
	}
	if changed(FlagLayout) {
		merged.Layout = flags.Layout
	}
	if changed(FlagDirect) {
		merged.Direct = flags.Direct
	}
	if changed(FlagOutput) {
		merged.Output = flags.Output
	}
	if changed(FlagVerbose) {
		merged.Verbose = flags.Verbose
	}

	merged.ConfigFile = flags.ConfigFile
	merged.ShowVersion = flags.ShowVersion
	return merged
}

// Validate checks the configuration before any input is opened
func (c Config) Validate() error {
	if err := capture.ValidateFormat(c.InputFormat); err != nil {
		return err
	}
	if _, err := pack.LayoutByName(c.Layout); err != nil {
		return err
	}
	switch strings.ToLower(c.Output) {
	case report.FormatText, report.FormatJSON:
	default:
		return fmt.Errorf("unknown output format: %s", c.Output)
	}
	if c.SerialDevice != "" && c.Input != "" && c.Input != "-" {
		return fmt.Errorf("input file and serial device are mutually exclusive")
	}
	if c.SerialDevice != "" {
		switch strings.ToLower(c.InputFormat) {
		case capture.FormatHex, capture.FormatStream:
		default:
			return fmt.Errorf("serial input must be hex or stream, got %s", c.InputFormat)
		}
	}
	if c.BaudRate < 0 {
		return fmt.Errorf("invalid baud rate: %d", c.BaudRate)
	}
	return nil
}
