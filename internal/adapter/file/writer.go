package file

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

// ErrUnsupportedFormat is returned for output paths that are neither .csv nor .json.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format names an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// resultColumns is the CSV header, in order.
var resultColumns = []string{
	"datetime_utc", "distance_au", "velocity_km_s",
	"designation", "name", "diameter_km", "potentially_hazardous",
}

// FormatFor selects the output format from a path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Writer saves linked approaches to a file.
// It implements pipeline.Sink.
type Writer struct {
	path   string
	format Format
	logger *slog.Logger
}

// NewWriter creates a Writer whose format is chosen by the path's extension.
func NewWriter(path string, logger *slog.Logger) (*Writer, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return &Writer{path: path, format: format, logger: logger}, nil
}

// Format reports the encoding this Writer produces, "csv" or "json".
func (w *Writer) Format() string { return string(w.format) }

// Write replaces the file's contents with rows, in order.
func (w *Writer) Write(_ context.Context, rows []domain.LinkedApproach) error {
	if err := Write(w.path, rows); err != nil {
		return err
	}
	w.logger.Info("results written", "path", w.path, "format", w.format, "rows", len(rows))
	return nil
}

// Write truncates path and writes rows as CSV or JSON according to its extension.
func Write(path string, rows []domain.LinkedApproach) (err error) {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write results %s: %w", path, cerr)
		}
	}()

	switch format {
	case FormatCSV:
		err = EncodeCSV(f, rows)
	case FormatJSON:
		err = EncodeJSON(f, rows)
	}
	if err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}
	return nil
}

// EncodeCSV writes a header row followed by one flat row per approach.
func EncodeCSV(w io.Writer, rows []domain.LinkedApproach) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultColumns); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Approach.TimeString(),
			formatFloat(r.Approach.Distance),
			formatFloat(r.Approach.Velocity),
			r.NEO.Designation,
			r.NEO.NameOrEmpty(),
			formatCSVDiameter(r.NEO.Diameter),
			formatCSVBool(r.NEO.Hazardous),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeJSON writes a single array with the NEO fields nested under "neo".
// An unknown diameter is written as the bare token NaN, which strict JSON
// parsers reject; encoding/json cannot emit it, so objects are assembled here.
func EncodeJSON(w io.Writer, rows []domain.LinkedApproach) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('[')
	for i, r := range rows {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString("\n  ")
		bw.Write(encodeJSONRow(r))
	}
	if len(rows) > 0 {
		bw.WriteByte('\n')
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

func encodeJSONRow(r domain.LinkedApproach) []byte {
	var b bytes.Buffer
	b.WriteString(`{"datetime_utc": `)
	writeJSONString(&b, r.Approach.TimeString())
	b.WriteString(`, "distance_au": `)
	b.WriteString(formatFloat(r.Approach.Distance))
	b.WriteString(`, "velocity_km_s": `)
	b.WriteString(formatFloat(r.Approach.Velocity))
	b.WriteString(`, "neo": {"designation": `)
	writeJSONString(&b, r.NEO.Designation)
	b.WriteString(`, "name": `)
	writeJSONString(&b, r.NEO.NameOrEmpty())
	b.WriteString(`, "diameter_km": `)
	b.WriteString(formatJSONDiameter(r.NEO.Diameter))
	b.WriteString(`, "potentially_hazardous": `)
	b.WriteString(strconv.FormatBool(r.NEO.Hazardous))
	b.WriteString("}}")
	return b.Bytes()
}

func writeJSONString(b *bytes.Buffer, s string) {
	// Marshalling a string cannot fail.
	data, _ := json.Marshal(s)
	b.Write(data)
}

// formatFloat prints the shortest decimal that parses back to v exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCSVDiameter(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return formatFloat(v)
}

func formatJSONDiameter(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return formatFloat(v)
}

func formatCSVBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
