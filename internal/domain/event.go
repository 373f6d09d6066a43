package domain

import (
	"fmt"
	"math"
	"time"
)

// RawNEO holds the four SBDB CSV columns the domain needs, as read.
type RawNEO struct {
	PDes     string `json:"pdes"`
	Name     string `json:"name"`
	Diameter string `json:"diameter"`
	PHA      string `json:"pha"`
}

// RawApproach holds the four close-approach cells the domain needs, as read.
type RawApproach struct {
	Des  string `json:"des"`
	CD   string `json:"cd"`
	Dist string `json:"dist"`
	VRel string `json:"v_rel"`
}

// NearEarthObject is a small body whose orbit brings it close to Earth.
type NearEarthObject struct {
	Designation string
	Name        *string // nil when the object has no IAU name
	Diameter    float64 // km; NaN when unknown
	Hazardous   bool
}

// FullName combines the designation with the name, if any: "433 (Eros)".
func (n NearEarthObject) FullName() string {
	if n.Name == nil {
		return n.Designation
	}
	return fmt.Sprintf("%s (%s)", n.Designation, *n.Name)
}

// NameOrEmpty returns the IAU name, or "" for a nameless object.
func (n NearEarthObject) NameOrEmpty() string {
	if n.Name == nil {
		return ""
	}
	return *n.Name
}

// DiameterKnown reports whether the diameter is a real measurement.
func (n NearEarthObject) DiameterKnown() bool {
	return !math.IsNaN(n.Diameter)
}

// HazardPhrase returns "is" or "is not" for use in sentences.
func (n NearEarthObject) HazardPhrase() string {
	if n.Hazardous {
		return "is"
	}
	return "is not"
}

func (n NearEarthObject) String() string {
	return fmt.Sprintf("NEO %s has a diameter of %.3f km and %s potentially hazardous.",
		n.FullName(), n.Diameter, n.HazardPhrase())
}

// CloseApproach is a single pass of an NEO near Earth.
type CloseApproach struct {
	Designation string // designation of the approaching NEO
	Time        time.Time
	Distance    float64 // au
	Velocity    float64 // km/s
}

// TimeString renders the approach time at minute precision.
func (c CloseApproach) TimeString() string {
	return FormatMinute(c.Time)
}

func (c CloseApproach) String() string {
	return fmt.Sprintf("On %s, %s approaches Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		c.TimeString(), c.Designation, c.Distance, c.Velocity)
}

// LinkedApproach pairs a close approach with the NEO it resolved to.
type LinkedApproach struct {
	Approach CloseApproach
	NEO      NearEarthObject
}

func (l LinkedApproach) String() string {
	return fmt.Sprintf("On %s, '%s' approaches Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		l.Approach.TimeString(), l.NEO.FullName(), l.Approach.Distance, l.Approach.Velocity)
}
