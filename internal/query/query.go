// Package query selects close approaches by date, distance, velocity,
// diameter, and hazard status.
package query

import (
	"time"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

// Criteria lists the optional bounds of a query. Nil fields are unbounded.
// Bounds are inclusive.
type Criteria struct {
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time

	DistanceMin *float64
	DistanceMax *float64
	VelocityMin *float64
	VelocityMax *float64
	DiameterMin *float64
	DiameterMax *float64

	Hazardous *bool
}

// Filter reports whether a linked approach should be kept.
type Filter func(domain.LinkedApproach) bool

// Filters turns the set bounds of c into filters. Date bounds compare UTC
// calendar days. An unknown diameter satisfies no diameter bound.
func Filters(c Criteria) []Filter {
	var fs []Filter

	if c.Date != nil {
		day := calendarDay(*c.Date)
		fs = append(fs, func(l domain.LinkedApproach) bool { return calendarDay(l.Approach.Time).Equal(day) })
	}
	if c.StartDate != nil {
		day := calendarDay(*c.StartDate)
		fs = append(fs, func(l domain.LinkedApproach) bool { return !calendarDay(l.Approach.Time).Before(day) })
	}
	if c.EndDate != nil {
		day := calendarDay(*c.EndDate)
		fs = append(fs, func(l domain.LinkedApproach) bool { return !calendarDay(l.Approach.Time).After(day) })
	}

	fs = appendRange(fs, c.DistanceMin, c.DistanceMax, func(l domain.LinkedApproach) float64 { return l.Approach.Distance })
	fs = appendRange(fs, c.VelocityMin, c.VelocityMax, func(l domain.LinkedApproach) float64 { return l.Approach.Velocity })
	fs = appendRange(fs, c.DiameterMin, c.DiameterMax, func(l domain.LinkedApproach) float64 { return l.NEO.Diameter })

	if c.Hazardous != nil {
		want := *c.Hazardous
		fs = append(fs, func(l domain.LinkedApproach) bool { return l.NEO.Hazardous == want })
	}
	return fs
}

// appendRange adds min/max filters. NaN fails both comparisons, so an unknown
// value never passes a bound.
func appendRange(fs []Filter, lo, hi *float64, value func(domain.LinkedApproach) float64) []Filter {
	if lo != nil {
		bound := *lo
		fs = append(fs, func(l domain.LinkedApproach) bool { return value(l) >= bound })
	}
	if hi != nil {
		bound := *hi
		fs = append(fs, func(l domain.LinkedApproach) bool { return value(l) <= bound })
	}
	return fs
}

// Select returns the rows that pass every filter, in input order.
func Select(rows []domain.LinkedApproach, filters []Filter) []domain.LinkedApproach {
	out := make([]domain.LinkedApproach, 0, len(rows))
rows:
	for _, r := range rows {
		for _, f := range filters {
			if !f(r) {
				continue rows
			}
		}
		out = append(out, r)
	}
	return out
}

// Limit returns at most n rows. n <= 0 means no limit.
func Limit(rows []domain.LinkedApproach, n int) []domain.LinkedApproach {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
