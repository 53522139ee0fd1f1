package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"droneid/internal/capture"
	"droneid/internal/odid"
	"droneid/internal/parser"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Text line record tags
const (
	TagBasicID    = "ID"   // Basic ID
	TagLocation   = "LOC"  // Location/Vector
	TagSelfID     = "SELF" // Self ID
	TagSystem     = "SYS"  // System
	TagOperatorID = "OP"   // Operator ID
	lineType      = "MSG"
)

// Writer emits decoded records, one line per record
type Writer struct {
	out     io.Writer
	format  string
	logger  *logrus.Logger
	mu      sync.Mutex
	written int
}

// NewWriter creates a new record writer
func NewWriter(out io.Writer, format string, logger *logrus.Logger) (*Writer, error) {
	format = strings.ToLower(format)
	if format != FormatText && format != FormatJSON {
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Writer{
		out:    out,
		format: format,
		logger: logger,
	}, nil
}

// Written returns the number of lines written so far
func (w *Writer) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// WriteResult writes every record of result tagged with its capture origin
func (w *Writer) WriteResult(c *capture.Capture, result *parser.Result) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}
	if c == nil {
		c = &capture.Capture{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, record := range result.Records() {
		line, err := w.formatRecord(c, record)
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if _, err := io.WriteString(w.out, line+"\n"); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		w.written++
	}

	w.logger.WithFields(logrus.Fields{
		"source":  c.Source,
		"index":   c.Index,
		"records": result.TotalRecords(),
		"skipped": result.Skipped,
	}).Debug("Wrote capture records")

	return nil
}

func (w *Writer) formatRecord(c *capture.Capture, record odid.Record) (string, error) {
	if w.format == FormatJSON {
		return formatJSON(c, record)
	}
	fields := recordFields(record)
	if fields == nil {
		return "", nil
	}
	return formatText(c, fields), nil
}

// formatText joins the origin and record fields as a comma separated line
func formatText(c *capture.Capture, fields []string) string {
	captured := ""
	if !c.Timestamp.IsZero() {
		captured = c.Timestamp.UTC().Format("2006/01/02 15:04:05.000")
	}

	parts := []string{
		lineType,
		fields[0],
		c.Source,
		strconv.Itoa(c.Index),
		c.Transmitter,
		captured,
	}
	parts = append(parts, fields[1:]...)
	return strings.Join(parts, ",")
}

// recordFields returns the tag followed by the record's columns
func recordFields(record odid.Record) []string {
	switch r := record.(type) {
	case *odid.BasicID:
		return []string{TagBasicID,
			r.IDType.String(),
			r.UAType.String(),
			csvText(r.UASID),
		}
	case *odid.Location:
		return []string{TagLocation,
			r.Status.String(),
			strconv.Itoa(int(r.Direction)),
			formatFloat(r.SpeedHorizontal, 2),
			formatFloat(r.SpeedVertical, 2),
			formatFloat(r.Latitude, 7),
			formatFloat(r.Longitude, 7),
			formatFloat(r.AltitudeBaro, 1),
			formatFloat(r.AltitudeGeo, 1),
			formatFloat(r.Height, 1),
			r.HeightType.String(),
			r.Timestamp,
		}
	case *odid.SelfID:
		return []string{TagSelfID,
			r.DescriptionType.String(),
			csvText(r.Description),
		}
	case *odid.System:
		return []string{TagSystem,
			r.ClassificationType.String(),
			r.OperatorLocationType.String(),
			formatFloat(r.OperatorLatitude, 7),
			formatFloat(r.OperatorLongitude, 7),
			strconv.Itoa(int(r.AreaCount)),
			strconv.Itoa(int(r.AreaRadius)),
			formatFloat(r.AreaCeiling, 1),
			formatFloat(r.AreaFloor, 1),
			r.UACategory.String(),
			r.UAClass.String(),
			formatFloat(r.OperatorAltitude, 1),
			r.Timestamp.UTC().Format(time.RFC3339),
		}
	case *odid.OperatorID:
		return []string{TagOperatorID,
			r.OperatorIDType.String(),
			csvText(r.OperatorID),
		}
	default:
		return nil
	}
}

// formatFloat leaves unknown (NaN) values empty
func formatFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// csvText keeps free text from breaking the column layout
func csvText(s string) string {
	return strings.NewReplacer(",", " ", "\n", " ", "\r", " ").Replace(s)
}

// optFloat maps NaN to null in JSON output
func optFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

type jsonLine struct {
	Type        string      `json:"type"`
	Source      string      `json:"source,omitempty"`
	Index       int         `json:"index,omitempty"`
	Transmitter string      `json:"transmitter,omitempty"`
	CapturedAt  *time.Time  `json:"captured_at,omitempty"`
	Record      interface{} `json:"record"`
}

type jsonBasicID struct {
	IDType string `json:"id_type"`
	UAType string `json:"ua_type"`
	UASID  string `json:"uas_id"`
}

type jsonLocation struct {
	Status             string   `json:"status"`
	HeightType         string   `json:"height_type"`
	EWDirection        uint8    `json:"ew_direction"`
	SpeedMultiplier    uint8    `json:"speed_multiplier"`
	Direction          uint8    `json:"direction"`
	SpeedHorizontal    *float64 `json:"speed_horizontal"`
	SpeedVertical      *float64 `json:"speed_vertical"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	AltitudeBaro       float64  `json:"altitude_baro"`
	AltitudeGeo        float64  `json:"altitude_geo"`
	Height             float64  `json:"height"`
	HorizontalAccuracy uint8    `json:"horizontal_accuracy"`
	VerticalAccuracy   uint8    `json:"vertical_accuracy"`
	BaroAccuracy       uint8    `json:"baro_accuracy"`
	SpeedAccuracy      uint8    `json:"speed_accuracy"`
	Timestamp          string   `json:"timestamp"`
	TimestampAccuracy  uint8    `json:"timestamp_accuracy"`
}

type jsonSelfID struct {
	DescriptionType string `json:"description_type"`
	Description     string `json:"description"`
}

type jsonSystem struct {
	ClassificationType   string    `json:"classification_type"`
	OperatorLocationType string    `json:"operator_location_type"`
	OperatorLatitude     float64   `json:"operator_latitude"`
	OperatorLongitude    float64   `json:"operator_longitude"`
	AreaCount            uint16    `json:"area_count"`
	AreaRadius           uint8     `json:"area_radius"`
	AreaCeiling          float64   `json:"area_ceiling"`
	AreaFloor            float64   `json:"area_floor"`
	UACategory           string    `json:"ua_category"`
	UAClass              string    `json:"ua_class"`
	OperatorAltitude     float64   `json:"operator_altitude"`
	Timestamp            time.Time `json:"timestamp"`
}

type jsonOperatorID struct {
	OperatorIDType string `json:"operator_id_type"`
	OperatorID     string `json:"operator_id"`
}

func jsonRecord(record odid.Record) interface{} {
	switch r := record.(type) {
	case *odid.BasicID:
		return jsonBasicID{
			IDType: r.IDType.String(),
			UAType: r.UAType.String(),
			UASID:  r.UASID,
		}
	case *odid.Location:
		return jsonLocation{
			Status:             r.Status.String(),
			HeightType:         r.HeightType.String(),
			EWDirection:        r.EWDirection,
			SpeedMultiplier:    r.SpeedMultiplier,
			Direction:          r.Direction,
			SpeedHorizontal:    optFloat(r.SpeedHorizontal),
			SpeedVertical:      optFloat(r.SpeedVertical),
			Latitude:           r.Latitude,
			Longitude:          r.Longitude,
			AltitudeBaro:       r.AltitudeBaro,
			AltitudeGeo:        r.AltitudeGeo,
			Height:             r.Height,
			HorizontalAccuracy: r.HorizontalAccuracy,
			VerticalAccuracy:   r.VerticalAccuracy,
			BaroAccuracy:       r.BaroAccuracy,
			SpeedAccuracy:      r.SpeedAccuracy,
			Timestamp:          r.Timestamp,
			TimestampAccuracy:  r.TimestampAccuracy,
		}
	case *odid.SelfID:
		return jsonSelfID{
			DescriptionType: r.DescriptionType.String(),
			Description:     r.Description,
		}
	case *odid.System:
		return jsonSystem{
			ClassificationType:   r.ClassificationType.String(),
			OperatorLocationType: r.OperatorLocationType.String(),
			OperatorLatitude:     r.OperatorLatitude,
			OperatorLongitude:    r.OperatorLongitude,
			AreaCount:            r.AreaCount,
			AreaRadius:           r.AreaRadius,
			AreaCeiling:          r.AreaCeiling,
			AreaFloor:            r.AreaFloor,
			UACategory:           r.UACategory.String(),
			UAClass:              r.UAClass.String(),
			OperatorAltitude:     r.OperatorAltitude,
			Timestamp:            r.Timestamp.UTC(),
		}
	case *odid.OperatorID:
		return jsonOperatorID{
			OperatorIDType: r.OperatorIDType.String(),
			OperatorID:     r.OperatorID,
		}
	default:
		return nil
	}
}

func formatJSON(c *capture.Capture, record odid.Record) (string, error) {
	body := jsonRecord(record)
	if body == nil {
		return "", nil
	}

	line := jsonLine{
		Type:        record.MessageType().String(),
		Source:      c.Source,
		Index:       c.Index,
		Transmitter: c.Transmitter,
		Record:      body,
	}
	if !c.Timestamp.IsZero() {
		ts := c.Timestamp.UTC()
		line.CapturedAt = &ts
	}

	encoded, err := json.Marshal(line)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s record: %w", line.Type, err)
	}
	return string(encoded), nil
}
