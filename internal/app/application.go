package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"droneid/internal/capture"
	"droneid/internal/pack"
	"droneid/internal/parser"
	"droneid/internal/report"
)

// Stats counts what the application has processed
type Stats struct {
	Captures int // captures read from the input
	Empty    int // captures without any message
	Messages int // frames classified
	Records  int // records decoded
	Skipped  int // frames without a decoded record
	Written  int // output lines
}

// Application represents the main application
type Application struct {
	config Config
	logger *logrus.Logger
	parser *parser.Parser
	writer *report.Writer
	reader capture.Reader
	input  io.Closer
	stdin  io.Reader
	stdout io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeOnce sync.Once
	statsMu   sync.Mutex
	stats     Stats
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start decodes the configured input until it ends or a shutdown signal arrives
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting Remote ID decoder")

	if err := app.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize components
	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		select {
		case <-sigChan:
			app.logger.Info("Received shutdown signal")
			app.cancel()
			// unblocks a pending read on a serial port or file; a read on
			// stdin is abandoned by run
			app.closeInput()
		case <-app.ctx.Done():
		}
	}()

	err := app.run()
	if err != nil {
		app.logger.WithError(err).Error("Application error")
	}
	app.shutdown()

	return err
}

// Stats returns a snapshot of the processing counters
func (app *Application) Stats() Stats {
	app.statsMu.Lock()
	defer app.statsMu.Unlock()
	return app.stats
}

// initializeComponents initializes all application components
func (app *Application) initializeComponents() error {
	layout, err := pack.LayoutByName(app.config.Layout)
	if err != nil {
		return err
	}

	app.parser, err = parser.NewParser(app.logger, parser.WithLayout(layout))
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}

	app.writer, err = report.NewWriter(app.stdout, app.config.Output, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize writer: %w", err)
	}

	if err := app.openInput(); err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}

	return nil
}

// openInput selects the capture reader for the configured source
func (app *Application) openInput() error {
	var (
		in     io.Reader
		source string
	)

	switch {
	case app.config.SerialDevice != "":
		port, err := capture.OpenSerial(app.config.SerialDevice, app.config.BaudRate)
		if err != nil {
			return err
		}
		app.input = port
		in = port
		source = app.config.SerialDevice

		app.logger.WithFields(logrus.Fields{
			"device": app.config.SerialDevice,
			"baud":   app.config.BaudRate,
		}).Info("Opened serial port")
	case app.config.Input == "" || app.config.Input == "-":
		in = app.stdin
		source = "stdin"
	default:
		file, err := os.Open(app.config.Input)
		if err != nil {
			return err
		}
		app.input = file
		in = file
		source = app.config.Input
	}

	switch strings.ToLower(app.config.InputFormat) {
	case capture.FormatBinary:
		app.reader = capture.NewBinaryReader(in, source)
	case capture.FormatStream:
		reader, err := capture.NewStreamReader(in, source, app.parser.Layout(), app.logger)
		if err != nil {
			app.closeInput()
			return err
		}
		app.reader = reader
	case capture.FormatPCAP:
		reader, err := capture.NewPCAPReader(in, source, app.logger)
		if err != nil {
			app.closeInput()
			return err
		}
		app.reader = reader
	default:
		app.reader = capture.NewHexReader(in, source, app.logger)
	}

	app.logger.WithFields(logrus.Fields{
		"source": source,
		"format": app.config.InputFormat,
		"layout": app.parser.Layout().Name,
		"direct": app.config.Direct,
	}).Info("Reading captures")
	return nil
}

// readResult is one ReadCapture outcome passed from the reading goroutine
type readResult struct {
	capture *capture.Capture
	err     error
}

// readCaptures reads on its own goroutine so that a read blocked on stdin
// cannot hold up shutdown. The goroutine ends after the first error or when
// the context is cancelled.
func (app *Application) readCaptures() <-chan readResult {
	results := make(chan readResult)

	go func() {
		defer close(results)
		for {
			c, err := app.reader.ReadCapture()
			select {
			case results <- readResult{capture: c, err: err}:
			case <-app.ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	return results
}

// run consumes captures until the input is exhausted or the context is cancelled
func (app *Application) run() error {
	results := app.readCaptures()

	for {
		select {
		case <-app.ctx.Done():
			return nil
		case r, ok := <-results:
			if !ok {
				return nil
			}
			if r.err != nil {
				if errors.Is(r.err, io.EOF) || app.ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("failed to read capture: %w", r.err)
			}

			if err := app.processCapture(r.capture); err != nil {
				return err
			}
		}
	}
}

// processCapture decodes one capture and writes its records
func (app *Application) processCapture(c *capture.Capture) error {
	var result *parser.Result
	if app.config.Direct {
		result = app.parser.ParseMessages(c.Data)
	} else {
		result = app.parser.Parse(c.Data)
	}

	app.statsMu.Lock()
	app.stats.Captures++
	if !result.HasMessages() {
		app.stats.Empty++
	}
	app.stats.Messages += result.TotalMessages()
	app.stats.Records += result.TotalRecords()
	app.stats.Skipped += result.Skipped
	app.statsMu.Unlock()

	if !result.HasMessages() {
		app.logger.WithFields(logrus.Fields{
			"source": c.Source,
			"index":  c.Index,
			"bytes":  len(c.Data),
		}).Debug("No messages in capture")
		return nil
	}

	if err := app.writer.WriteResult(c, result); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// closeInput releases the input file or serial port
func (app *Application) closeInput() {
	app.closeOnce.Do(func() {
		if app.input != nil {
			if err := app.input.Close(); err != nil {
				app.logger.WithError(err).Debug("Failed to close input")
			}
		}
	})
}

// shutdown gracefully shuts down the application
func (app *Application) shutdown() {
	app.cancel()

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		app.logger.Warn("Shutdown timeout, forcing exit")
	}

	app.closeInput()

	stats := app.Stats()
	if app.writer != nil {
		stats.Written = app.writer.Written()
		app.statsMu.Lock()
		app.stats.Written = stats.Written
		app.statsMu.Unlock()
	}

	app.logger.WithFields(logrus.Fields{
		"captures": stats.Captures,
		"empty":    stats.Empty,
		"messages": stats.Messages,
		"records":  stats.Records,
		"skipped":  stats.Skipped,
		"written":  stats.Written,
	}).Info("Decoding statistics")
}
