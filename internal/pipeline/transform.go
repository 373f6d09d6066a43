package pipeline

import (
	"fmt"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

const (
	datasetNEOs       = "neos"
	datasetApproaches = "approaches"
)

// RecordError identifies the raw record that failed entity construction.
// Record is 1-based and counts data rows only.
type RecordError struct {
	Dataset string
	Record  int
	Err     error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("construct %s record %d: %v", e.Dataset, e.Record, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// BuildNEOs constructs one NearEarthObject per raw record, in order. The
// first failure is returned as a *RecordError.
func BuildNEOs(raws []domain.RawNEO) ([]domain.NearEarthObject, error) {
	out := make([]domain.NearEarthObject, 0, len(raws))
	for i, raw := range raws {
		neo, err := domain.NewNearEarthObject(raw)
		if err != nil {
			return nil, &RecordError{Dataset: datasetNEOs, Record: i + 1, Err: err}
		}
		out = append(out, neo)
	}
	return out, nil
}

// BuildApproaches constructs one CloseApproach per raw record, in order. The
// first failure is returned as a *RecordError.
func BuildApproaches(raws []domain.RawApproach) ([]domain.CloseApproach, error) {
	out := make([]domain.CloseApproach, 0, len(raws))
	for i, raw := range raws {
		ca, err := domain.NewCloseApproach(raw)
		if err != nil {
			return nil, &RecordError{Dataset: datasetApproaches, Record: i + 1, Err: err}
		}
		out = append(out, ca)
	}
	return out, nil
}
