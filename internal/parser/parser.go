package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"droneid/internal/odid"
	"droneid/internal/pack"
)

// Parser turns raw captures into decoded ODID records
type Parser struct {
	logger  *logrus.Logger
	scanner *pack.Scanner
}

// Option configures a Parser
type Option func(*options)

type options struct {
	layout pack.Layout
}

// WithLayout selects the message pack layout used by Parse and ParseHex
func WithLayout(layout pack.Layout) Option {
	return func(o *options) {
		o.layout = layout
	}
}

// NewParser creates a new parser
func NewParser(logger *logrus.Logger, opts ...Option) (*Parser, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	o := options{layout: pack.DefaultLayout}
	for _, opt := range opts {
		opt(&o)
	}

	scanner, err := pack.NewScanner(o.layout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	return &Parser{
		logger:  logger,
		scanner: scanner,
	}, nil
}

// Layout returns the message pack layout in use
func (p *Parser) Layout() pack.Layout {
	return p.scanner.Layout()
}

// Parse finds the message pack in data and decodes every message in it.
// Data without a marker gives an empty result.
func (p *Parser) Parse(data []byte) *Result {
	messages, err := p.scanner.Scan(data)
	if err != nil {
		p.logger.WithError(err).Debug("Message pack scan failed")
		return &Result{}
	}
	return p.Decode(messages)
}

// ParseHex is Parse over hex text
func (p *Parser) ParseHex(text string) (*Result, error) {
	data, err := odid.HexToBytes(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hex: %w", err)
	}
	return p.Parse(data), nil
}

// ParseMessage classifies a single message from buf
func (p *Parser) ParseMessage(buf []byte) (*odid.Message, error) {
	return odid.NewMessage(buf)
}

// ParseMessages decodes consecutive 25-byte messages without a marker search
func (p *Parser) ParseMessages(buf []byte) *Result {
	return p.Decode(p.scanner.Split(buf))
}

// ParseMessagesHex is ParseMessages over hex text
func (p *Parser) ParseMessagesHex(text string) (*Result, error) {
	data, err := odid.HexToBytes(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hex: %w", err)
	}
	return p.ParseMessages(data), nil
}

// Decode applies the matching payload decoder to every message. Messages
// that cannot be decoded are kept in Messages and counted in Skipped.
func (p *Parser) Decode(messages []*odid.Message) *Result {
	result := &Result{}

	for i, msg := range messages {
		if msg == nil {
			continue
		}
		result.Messages = append(result.Messages, msg)

		rec, err := odid.Decode(msg)
		if err != nil {
			result.Skipped++
			p.logger.WithError(err).WithFields(logrus.Fields{
				"index":        i,
				"message_type": msg.Type.String(),
				"version":      msg.ProtocolVersion,
			}).Debug("Skipping message")
			continue
		}

		p.logger.WithFields(logrus.Fields{
			"index":        i,
			"message_type": msg.Type.String(),
			"version":      msg.ProtocolVersion,
		}).Debug("Decoded message")
		result.add(rec)
	}

	return result
}
