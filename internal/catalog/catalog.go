// Package catalog links NEOs to their close approaches.
//
// Entities live in two slices owned by the Catalog. The association between
// them is held in index maps keyed by designation, so neither entity kind
// points at the other.
package catalog

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

var (
	// ErrDuplicateDesignation is returned when two NEOs share a designation.
	ErrDuplicateDesignation = errors.New("duplicate designation")

	// ErrUnknownDesignation is returned when an approach references no known NEO.
	ErrUnknownDesignation = errors.New("unknown designation")
)

// Catalog is an immutable, fully linked set of NEOs and close approaches.
type Catalog struct {
	neos       []domain.NearEarthObject
	approaches []domain.CloseApproach

	byDesignation map[string]int
	byName        map[string]int
	approachesOf  map[string][]int
}

// New indexes neos and links every approach to its NEO in a single pass.
// Input order is preserved for both slices.
func New(neos []domain.NearEarthObject, approaches []domain.CloseApproach) (*Catalog, error) {
	c := &Catalog{
		neos:          neos,
		approaches:    approaches,
		byDesignation: make(map[string]int, len(neos)),
		byName:        make(map[string]int),
		approachesOf:  make(map[string][]int, len(neos)),
	}

	for i, neo := range neos {
		if _, dup := c.byDesignation[neo.Designation]; dup {
			return nil, fmt.Errorf("index neo %d: %w: %q", i+1, ErrDuplicateDesignation, neo.Designation)
		}
		c.byDesignation[neo.Designation] = i
		if neo.Name != nil {
			if _, seen := c.byName[*neo.Name]; !seen {
				c.byName[*neo.Name] = i
			}
		}
	}

	for i, ca := range approaches {
		if _, ok := c.byDesignation[ca.Designation]; !ok {
			return nil, fmt.Errorf("link approach %d: %w: %q", i+1, ErrUnknownDesignation, ca.Designation)
		}
		c.approachesOf[ca.Designation] = append(c.approachesOf[ca.Designation], i)
	}

	return c, nil
}

// NEOCount returns the number of indexed NEOs.
func (c *Catalog) NEOCount() int { return len(c.neos) }

// ApproachCount returns the number of linked approaches.
func (c *Catalog) ApproachCount() int { return len(c.approaches) }

// NEOs returns every indexed NEO in input order.
func (c *Catalog) NEOs() []domain.NearEarthObject {
	out := make([]domain.NearEarthObject, len(c.neos))
	copy(out, c.neos)
	return out
}

// NEOByDesignation looks up an NEO by its exact primary designation.
func (c *Catalog) NEOByDesignation(designation string) (domain.NearEarthObject, bool) {
	i, ok := c.byDesignation[designation]
	if !ok {
		return domain.NearEarthObject{}, false
	}
	return c.neos[i], true
}

// NEOByName looks up an NEO by its exact IAU name. Nameless NEOs are never
// returned, and an empty name matches nothing.
func (c *Catalog) NEOByName(name string) (domain.NearEarthObject, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.NearEarthObject{}, false
	}
	return c.neos[i], true
}

// ApproachesFor returns the approaches of the NEO with the given designation,
// in input order.
func (c *Catalog) ApproachesFor(designation string) []domain.CloseApproach {
	idx := c.approachesOf[designation]
	out := make([]domain.CloseApproach, len(idx))
	for i, j := range idx {
		out[i] = c.approaches[j]
	}
	return out
}

// Linked returns every approach paired with its NEO, in approach input order.
func (c *Catalog) Linked() []domain.LinkedApproach {
	out := make([]domain.LinkedApproach, len(c.approaches))
	for i, ca := range c.approaches {
		out[i] = domain.LinkedApproach{
			Approach: ca,
			NEO:      c.neos[c.byDesignation[ca.Designation]],
		}
	}
	return out
}
