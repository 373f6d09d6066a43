package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// hazardousFlag is the only "pha" value that marks an object as hazardous.
const hazardousFlag = "Y"

var (
	errNotFinite   = errors.New("value is not finite")
	errNotPositive = errors.New("value must be greater than zero")
	errNegative    = errors.New("value must not be negative")
	errNotDecimal  = errors.New("value is not a decimal number")
)

// NewNearEarthObject coerces a raw SBDB row into a NearEarthObject.
// A missing name or diameter is not an error; a missing designation or a
// malformed diameter is.
func NewNearEarthObject(raw RawNEO) (NearEarthObject, error) {
	if raw.PDes == "" {
		return NearEarthObject{}, missing("pdes")
	}

	diameter, err := parseOptionalFloat("diameter", raw.Diameter)
	if err != nil {
		return NearEarthObject{}, err
	}

	return NearEarthObject{
		Designation: raw.PDes,
		Name:        optionalString(raw.Name),
		Diameter:    diameter,
		Hazardous:   raw.PHA == hazardousFlag,
	}, nil
}

// NewCloseApproach coerces a raw close-approach row into a CloseApproach.
// Every field is required.
func NewCloseApproach(raw RawApproach) (CloseApproach, error) {
	if raw.Des == "" {
		return CloseApproach{}, missing("des")
	}
	if strings.TrimSpace(raw.CD) == "" {
		return CloseApproach{}, missing("cd")
	}

	t, err := ParseCalendarDate(raw.CD)
	if err != nil {
		return CloseApproach{}, &FieldError{Field: "cd", Value: raw.CD, Err: err}
	}

	dist, err := parseRequiredFloat("dist", raw.Dist)
	if err != nil {
		return CloseApproach{}, err
	}
	if dist <= 0 {
		return CloseApproach{}, &FieldError{Field: "dist", Value: raw.Dist, Err: errNotPositive}
	}

	vel, err := parseRequiredFloat("v_rel", raw.VRel)
	if err != nil {
		return CloseApproach{}, err
	}
	if vel < 0 {
		return CloseApproach{}, &FieldError{Field: "v_rel", Value: raw.VRel, Err: errNegative}
	}

	return CloseApproach{
		Designation: raw.Des,
		Time:        t,
		Distance:    dist,
		Velocity:    vel,
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseOptionalFloat returns NaN for an empty cell. "nan" is accepted so that
// our own CSV output parses back to the same sentinel.
func parseOptionalFloat(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := parseDecimal(s)
	if err != nil {
		return 0, &FieldError{Field: field, Value: s, Err: err}
	}
	if math.IsInf(v, 0) {
		return 0, &FieldError{Field: field, Value: s, Err: errNotFinite}
	}
	return v, nil
}

func parseRequiredFloat(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, missing(field)
	}
	v, err := parseDecimal(s)
	if err != nil {
		return 0, &FieldError{Field: field, Value: s, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{Field: field, Value: s, Err: errNotFinite}
	}
	return v, nil
}

// parseDecimal is strconv.ParseFloat restricted to base-10 notation.
func parseDecimal(s string) (float64, error) {
	if strings.ContainsAny(s, "xX_") {
		return 0, errNotDecimal
	}
	return strconv.ParseFloat(s, 64)
}
