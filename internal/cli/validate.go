package cli

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/couchcryptid/neo-data-etl/internal/adapter/file"
	"github.com/couchcryptid/neo-data-etl/internal/catalog"
	"github.com/couchcryptid/neo-data-etl/internal/domain"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validateCmd(a *app) *cobra.Command {
	var results string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the inputs load and link, and optionally that a CSV result file matches them",
		Example: `  neo validate
  neo validate --results close.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cat, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			phases := []*phase{checkLinks(cat)}
			fmt.Fprintf(out, "Records: %d NEOs, %d close approaches\n", cat.NEOCount(), cat.ApproachCount())

			if results != "" {
				rows, err := file.ReadResultsCSV(results)
				if err != nil {
					return err
				}
				phases = append(phases, checkResults(cat, rows))
				fmt.Fprintf(out, "Results: %d rows in %s\n", len(rows), results)
			}

			if !report(out, phases) {
				return errors.New("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&results, "results", "r", "", "CSV file previously written by 'neo query --outfile'")
	return cmd
}

// linkView is the part of the catalog that checkLinks reads.
type linkView interface {
	NEOs() []domain.NearEarthObject
	ApproachCount() int
	ApproachesFor(designation string) []domain.CloseApproach
	Linked() []domain.LinkedApproach
}

// checkLinks verifies that every NEO's approaches carry its designation, that
// the per-NEO lists partition the approaches, and that every linked approach
// resolves back to a NEO listing it.
func checkLinks(cat linkView) *phase {
	p := &phase{name: "Catalog links"}

	owners := make(map[string]domain.NearEarthObject)
	total := 0
	for _, neo := range cat.NEOs() {
		owners[neo.Designation] = neo
		for _, ca := range cat.ApproachesFor(neo.Designation) {
			if ca.Designation != neo.Designation {
				p.errorf("NEO %s lists approach at %s of %q", neo.Designation, ca.TimeString(), ca.Designation)
			}
			total++
		}
	}
	if total != cat.ApproachCount() {
		p.errorf("NEOs list %d approaches, catalog holds %d", total, cat.ApproachCount())
	}

	for _, l := range cat.Linked() {
		owner, ok := owners[l.Approach.Designation]
		if !ok {
			p.errorf("approach at %s has no NEO %q", l.Approach.TimeString(), l.Approach.Designation)
			continue
		}
		if l.NEO.Designation != owner.Designation {
			p.errorf("approach at %s resolved to %q, want %q", l.Approach.TimeString(), l.NEO.Designation, owner.Designation)
			continue
		}
		if !hasApproach(cat.ApproachesFor(owner.Designation), l.Approach) {
			p.errorf("NEO %s does not list its approach at %s", owner.Designation, l.Approach.TimeString())
		}
	}
	return p
}

// checkResults verifies that every result row describes an approach and NEO
// present in the catalog.
func checkResults(cat *catalog.Catalog, rows []domain.LinkedApproach) *phase {
	p := &phase{name: "Result file"}

	for i, row := range rows {
		line := i + 2
		neo, ok := cat.NEOByDesignation(row.NEO.Designation)
		if !ok {
			p.errorf("line %d: unknown designation %q", line, row.NEO.Designation)
			continue
		}
		if neo.NameOrEmpty() != row.NEO.NameOrEmpty() {
			p.errorf("line %d: name %q, catalog has %q", line, row.NEO.NameOrEmpty(), neo.NameOrEmpty())
		}
		if neo.Hazardous != row.NEO.Hazardous {
			p.errorf("line %d: hazardous %t, catalog has %t", line, row.NEO.Hazardous, neo.Hazardous)
		}
		if !sameDiameter(neo.Diameter, row.NEO.Diameter) {
			p.errorf("line %d: diameter %v, catalog has %v", line, row.NEO.Diameter, neo.Diameter)
		}
		if !hasApproach(cat.ApproachesFor(neo.Designation), row.Approach) {
			p.errorf("line %d: no approach of %s at %s with distance %v and velocity %v",
				line, neo.Designation, row.Approach.TimeString(), row.Approach.Distance, row.Approach.Velocity)
		}
	}
	return p
}

// sameDiameter treats two unknown diameters as equal.
func sameDiameter(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

func hasApproach(approaches []domain.CloseApproach, want domain.CloseApproach) bool {
	for _, ca := range approaches {
		if ca.Time.Equal(want.Time) && ca.Distance == want.Distance && ca.Velocity == want.Velocity {
			return true
		}
	}
	return false
}

// report prints a PASS/FAIL line per phase followed by the failures.
func report(w io.Writer, phases []*phase) bool {
	pass := color.New(color.FgGreen).Sprint("PASS")
	allPassed := true

	fmt.Fprintln(w)
	for _, p := range phases {
		status := pass
		if !p.passed() {
			status = color.New(color.FgRed).Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-24s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}
	return allPassed
}
