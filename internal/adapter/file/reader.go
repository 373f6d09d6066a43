// Package file reads SBDB exports and writes close-approach results as CSV
// or JSON files.
package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

var (
	// ErrMissingColumn is returned when the NEO header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMissingData is returned when the close-approach document has no "data" rows.
	ErrMissingData = errors.New(`missing "data" key`)

	// ErrShortRow is returned when a close-approach row is narrower than the schema.
	ErrShortRow = errors.New("row too short")
)

// Close-approach rows are addressed by position, not by name. The upstream
// API's "fields" array lists the names in this order.
const (
	colDes  = 0
	colCD   = 3
	colDist = 4
	colVRel = 7

	approachRowWidth = colVRel + 1
)

var approachColumns = map[int]string{
	colDes:  "des",
	colCD:   "cd",
	colDist: "dist",
	colVRel: "v_rel",
}

var approachPositions = []int{colDes, colCD, colDist, colVRel}

var neoColumns = []string{"pdes", "name", "diameter", "pha"}

// Extractor reads both SBDB datasets from disk.
// It implements pipeline.Source.
type Extractor struct {
	neoPath string
	cadPath string
	logger  *slog.Logger
}

// NewExtractor creates an Extractor for the given NEO CSV and close-approach JSON paths.
func NewExtractor(neoPath, cadPath string, logger *slog.Logger) *Extractor {
	return &Extractor{neoPath: neoPath, cadPath: cadPath, logger: logger}
}

// NEORecords reads the NEO CSV file.
func (e *Extractor) NEORecords(_ context.Context) ([]domain.RawNEO, error) {
	recs, err := ReadNEOs(e.neoPath)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("read neo records", "path", e.neoPath, "count", len(recs))
	return recs, nil
}

// ApproachRecords reads the close-approach JSON file.
func (e *Extractor) ApproachRecords(_ context.Context) ([]domain.RawApproach, error) {
	fields, recs, err := readApproachFile(e.cadPath)
	if err != nil {
		return nil, err
	}
	if name, pos, ok := fieldsMismatch(fields); ok {
		e.logger.Warn("close-approach fields disagree with positional schema",
			"path", e.cadPath, "position", pos, "expected", approachColumns[pos], "got", name)
	}
	e.logger.Debug("read approach records", "path", e.cadPath, "count", len(recs))
	return recs, nil
}

// ReadNEOs reads an SBDB CSV export. The first row is the header; every
// following row must have the same number of fields.
func ReadNEOs(path string) ([]domain.RawNEO, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read neos: %w", err)
	}
	defer f.Close()

	recs, err := parseNEOs(f)
	if err != nil {
		return nil, fmt.Errorf("read neos %s: %w", path, err)
	}
	return recs, nil
}

func parseNEOs(r io.Reader) ([]domain.RawNEO, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("missing header row")
	}

	header := rows[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}
	for _, name := range neoColumns {
		if _, ok := pos[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	recs := make([]domain.RawNEO, 0, len(rows)-1)
	for _, row := range rows[1:] {
		recs = append(recs, domain.RawNEO{
			PDes:     row[pos["pdes"]],
			Name:     row[pos["name"]],
			Diameter: row[pos["diameter"]],
			PHA:      row[pos["pha"]],
		})
	}
	return recs, nil
}

// ReadApproaches reads a close-approach JSON document.
func ReadApproaches(path string) ([]domain.RawApproach, error) {
	_, recs, err := readApproachFile(path)
	return recs, err
}

// readApproachFile decodes the document at path and returns its declared
// field names alongside the positional records.
func readApproachFile(path string) ([]string, []domain.RawApproach, error) {
	doc, err := readCADDocument(path)
	if err != nil {
		return nil, nil, err
	}
	recs, err := approachesFromRows(*doc.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("read approaches %s: %w", path, err)
	}
	return doc.Fields, recs, nil
}

type cadDocument struct {
	Fields []string `json:"fields"`
	Data   *[][]any `json:"data"`
}

func readCADDocument(path string) (cadDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cadDocument{}, fmt.Errorf("read approaches: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc cadDocument
	if err := dec.Decode(&doc); err != nil {
		return cadDocument{}, fmt.Errorf("read approaches %s: %w", path, err)
	}
	if doc.Data == nil {
		return cadDocument{}, fmt.Errorf("read approaches %s: %w", path, ErrMissingData)
	}
	return doc, nil
}

func approachesFromRows(rows [][]any) ([]domain.RawApproach, error) {
	recs := make([]domain.RawApproach, 0, len(rows))
	for i, row := range rows {
		rec, err := approachFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// approachFromRow is the only place that knows the positional schema.
func approachFromRow(row []any) (domain.RawApproach, error) {
	if len(row) < approachRowWidth {
		return domain.RawApproach{}, fmt.Errorf("%w: %d of %d columns", ErrShortRow, len(row), approachRowWidth)
	}

	var cells [approachRowWidth]string
	for _, i := range approachPositions {
		s, err := cellString(row[i])
		if err != nil {
			return domain.RawApproach{}, fmt.Errorf("column %s: %w", approachColumns[i], err)
		}
		cells[i] = s
	}

	return domain.RawApproach{
		Des:  cells[colDes],
		CD:   cells[colCD],
		Dist: cells[colDist],
		VRel: cells[colVRel],
	}, nil
}

// cellString accepts the scalar shapes the API emits. Null reads as missing.
func cellString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	default:
		return "", fmt.Errorf("unexpected %T value", v)
	}
}

// fieldsMismatch reports the first position whose declared field name differs
// from the positional schema. An absent "fields" array is not a mismatch.
func fieldsMismatch(fields []string) (string, int, bool) {
	if len(fields) == 0 {
		return "", 0, false
	}
	for _, pos := range approachPositions {
		if pos >= len(fields) {
			return "", pos, true
		}
		if fields[pos] != approachColumns[pos] {
			return fields[pos], pos, true
		}
	}
	return "", 0, false
}
