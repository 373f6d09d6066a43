package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDesignation = "433"
	testName        = "Eros"
)

func TestNewNearEarthObject(t *testing.T) {
	t.Run("named object", func(t *testing.T) {
		neo, err := NewNearEarthObject(RawNEO{PDes: testDesignation, Name: testName, Diameter: "16.84", PHA: "N"})

		require.NoError(t, err)
		assert.Equal(t, testDesignation, neo.Designation)
		require.NotNil(t, neo.Name)
		assert.Equal(t, testName, *neo.Name)
		assert.Equal(t, 16.84, neo.Diameter)
		assert.False(t, neo.Hazardous)
		assert.Equal(t, "433 (Eros)", neo.FullName())
		assert.Equal(t, "is not", neo.HazardPhrase())
	})

	t.Run("nameless object", func(t *testing.T) {
		neo, err := NewNearEarthObject(RawNEO{PDes: "2020 AB", Diameter: "0.5", PHA: "Y"})

		require.NoError(t, err)
		assert.Nil(t, neo.Name)
		assert.Equal(t, "2020 AB", neo.FullName())
		assert.Empty(t, neo.NameOrEmpty())
		assert.True(t, neo.Hazardous)
		assert.Equal(t, "is", neo.HazardPhrase())
	})

	t.Run("unknown diameter", func(t *testing.T) {
		neo, err := NewNearEarthObject(RawNEO{PDes: "1998 QE2"})

		require.NoError(t, err)
		assert.True(t, math.IsNaN(neo.Diameter))
		assert.False(t, neo.Diameter == neo.Diameter) //nolint:staticcheck // NaN sentinel never equals itself
		assert.False(t, neo.DiameterKnown())
		assert.Contains(t, neo.String(), "NaN km")
	})

	t.Run("nan diameter reads back as unknown", func(t *testing.T) {
		neo, err := NewNearEarthObject(RawNEO{PDes: "1998 QE2", Diameter: "nan"})

		require.NoError(t, err)
		assert.False(t, neo.DiameterKnown())
	})

	t.Run("malformed diameter", func(t *testing.T) {
		_, err := NewNearEarthObject(RawNEO{PDes: testDesignation, Diameter: "big"})

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "diameter", fe.Field)
		assert.Equal(t, "big", fe.Value)
	})

	t.Run("hex diameter", func(t *testing.T) {
		_, err := NewNearEarthObject(RawNEO{PDes: testDesignation, Diameter: "0x1p4"})

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "diameter", fe.Field)
		assert.ErrorIs(t, err, errNotDecimal)
	})

	t.Run("empty designation", func(t *testing.T) {
		_, err := NewNearEarthObject(RawNEO{Name: testName, Diameter: "16.84", PHA: "N"})

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "pdes", fe.Field)
		assert.ErrorIs(t, err, ErrMissingField)
	})
}

func TestNewNearEarthObject_HazardFlag(t *testing.T) {
	tests := []struct {
		pha  string
		want bool
	}{
		{"Y", true},
		{"N", false},
		{"", false},
		{"y", false},
		{"YES", false},
		{"?", false},
	}

	for _, tc := range tests {
		t.Run("pha="+tc.pha, func(t *testing.T) {
			neo, err := NewNearEarthObject(RawNEO{PDes: testDesignation, PHA: tc.pha})
			require.NoError(t, err)
			assert.Equal(t, tc.want, neo.Hazardous)
		})
	}
}

func TestNewCloseApproach(t *testing.T) {
	t.Run("valid row", func(t *testing.T) {
		ca, err := NewCloseApproach(RawApproach{Des: testDesignation, CD: "1900-Jan-01 00:11", Dist: "1.234", VRel: "5.678"})

		require.NoError(t, err)
		assert.Equal(t, testDesignation, ca.Designation)
		assert.Equal(t, time.Date(1900, time.January, 1, 0, 11, 0, 0, time.UTC), ca.Time)
		assert.Equal(t, 1.234, ca.Distance)
		assert.Equal(t, 5.678, ca.Velocity)
		assert.Equal(t, "1900-01-01 00:11", ca.TimeString())
	})

	tests := []struct {
		name  string
		raw   RawApproach
		field string
	}{
		{"missing designation", RawApproach{CD: "1900-Jan-01 00:11", Dist: "1", VRel: "1"}, "des"},
		{"missing date", RawApproach{Des: "433", Dist: "1", VRel: "1"}, "cd"},
		{"bad date", RawApproach{Des: "433", CD: "1900-01-01", Dist: "1", VRel: "1"}, "cd"},
		{"bad distance", RawApproach{Des: "433", CD: "1900-Jan-01 00:11", Dist: "far", VRel: "1"}, "dist"},
		{"missing distance", RawApproach{Des: "433", CD: "1900-Jan-01 00:11", VRel: "1"}, "dist"},
		{"zero distance", RawApproach{Des: "433", CD: "1900-Jan-01 00:11", Dist: "0", VRel: "1"}, "dist"},
		{"nan distance", RawApproach{Des: "433", CD: "1900-Jan-01 00:11", Dist: "nan", VRel: "1"}, "dist"},
		{"bad velocity", RawApproach{Des: "433", CD: "1900-Jan-01 00:11", Dist: "1", VRel: "fast"}, "v_rel"},
		{"negative velocity", RawApproach{Des: "433", CD: "1900-Jan-01 00:11", Dist: "1", VRel: "-2"}, "v_rel"},
		{"hex distance", RawApproach{Des: "433", CD: "1900-Jan-01 00:11", Dist: "0x1p-4", VRel: "1"}, "dist"},
		{"hex velocity with underscores", RawApproach{Des: "433", CD: "1900-Jan-01 00:11", Dist: "1", VRel: "0x1_0p0"}, "v_rel"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCloseApproach(tc.raw)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestFieldError_Message(t *testing.T) {
	err := &FieldError{Field: "dist", Value: "far", Err: errors.New("invalid syntax")}
	assert.Equal(t, `field dist: invalid value "far": invalid syntax`, err.Error())

	assert.Equal(t, "field pdes: required value is missing", missing("pdes").Error())
}

func TestLinkedApproach_String(t *testing.T) {
	name := testName
	l := LinkedApproach{
		Approach: CloseApproach{Designation: testDesignation, Time: time.Date(1900, time.January, 1, 0, 11, 0, 0, time.UTC), Distance: 1.234, Velocity: 5.678},
		NEO:      NearEarthObject{Designation: testDesignation, Name: &name, Diameter: 16.84},
	}

	assert.Equal(t, "On 1900-01-01 00:11, '433 (Eros)' approaches Earth at a distance of 1.23 au and a velocity of 5.68 km/s.", l.String())
}
