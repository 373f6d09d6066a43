package file

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

// ReadResultsCSV reads a file produced by EncodeCSV back into linked approaches.
func ReadResultsCSV(path string) ([]domain.LinkedApproach, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	defer f.Close()

	rows, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}
	return rows, nil
}

// DecodeCSV parses EncodeCSV output. The header must match exactly.
func DecodeCSV(r io.Reader) ([]domain.LinkedApproach, error) {
	recs, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("missing header row")
	}
	if !slices.Equal(recs[0], resultColumns) {
		return nil, fmt.Errorf("unexpected header %v", recs[0])
	}

	out := make([]domain.LinkedApproach, 0, len(recs)-1)
	for i, rec := range recs[1:] {
		row, err := decodeResultRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func decodeResultRow(rec []string) (domain.LinkedApproach, error) {
	t, err := domain.ParseMinute(rec[0])
	if err != nil {
		return domain.LinkedApproach{}, &domain.FieldError{Field: "datetime_utc", Value: rec[0], Err: err}
	}
	dist, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return domain.LinkedApproach{}, &domain.FieldError{Field: "distance_au", Value: rec[1], Err: err}
	}
	vel, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return domain.LinkedApproach{}, &domain.FieldError{Field: "velocity_km_s", Value: rec[2], Err: err}
	}
	hazardous, err := strconv.ParseBool(rec[6])
	if err != nil {
		return domain.LinkedApproach{}, &domain.FieldError{Field: "potentially_hazardous", Value: rec[6], Err: err}
	}

	pha := "N"
	if hazardous {
		pha = "Y"
	}
	neo, err := domain.NewNearEarthObject(domain.RawNEO{
		PDes:     rec[3],
		Name:     rec[4],
		Diameter: rec[5],
		PHA:      pha,
	})
	if err != nil {
		return domain.LinkedApproach{}, err
	}

	return domain.LinkedApproach{
		Approach: domain.CloseApproach{
			Designation: neo.Designation,
			Time:        t,
			Distance:    dist,
			Velocity:    vel,
		},
		NEO: neo,
	}, nil
}
