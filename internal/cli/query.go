package cli

import (
	"fmt"
	"time"

	"github.com/couchcryptid/neo-data-etl/internal/adapter/file"
	"github.com/couchcryptid/neo-data-etl/internal/query"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// defaultPrintLimit caps printed results when no --limit or --outfile is given.
const defaultPrintLimit = 10

const dateLayout = "2006-01-02"

type queryFlags struct {
	date, startDate, endDate string
	minDistance, maxDistance float64
	minVelocity, maxVelocity float64
	minDiameter, maxDiameter float64
	hazardous, notHazardous  bool
	limit                    int
	outfile                  string
}

func queryCmd(a *app) *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Find close approaches matching filters",
		Long: `Find close approaches matching every given filter, in input order.

Dates are YYYY-MM-DD in UTC and bounds are inclusive. Objects with an unknown
diameter never match a diameter filter. Without --outfile at most 10 matches
are printed unless --limit says otherwise; with --outfile every match is
written unless --limit is set. The outfile extension (.csv or .json) selects
the format.`,
		Example: `  neo query --date 2020-01-01
  neo query --start-date 2020-01-01 --end-date 2020-12-31 --hazardous --limit 5
  neo query --max-distance 0.01 --outfile close.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := f.criteria(cmd.Flags())
			if err != nil {
				return err
			}

			var sink *file.Writer
			if f.outfile != "" {
				if sink, err = file.NewWriter(f.outfile, a.logger); err != nil {
					return err
				}
			}

			cat, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			if sink != nil {
				n, err := a.pipeline.Export(cmd.Context(), cat, criteria, f.limit, sink)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d close approaches to %s.\n", n, f.outfile)
				return nil
			}

			limit := f.limit
			if !cmd.Flags().Changed("limit") {
				limit = defaultPrintLimit
			}
			rows := query.Limit(query.Select(cat.Linked(), query.Filters(criteria)), limit)
			for _, r := range rows {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching close approaches.")
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.date, "date", "d", "", "only approaches on this date (YYYY-MM-DD)")
	fl.StringVarP(&f.startDate, "start-date", "s", "", "only approaches on or after this date (YYYY-MM-DD)")
	fl.StringVarP(&f.endDate, "end-date", "e", "", "only approaches on or before this date (YYYY-MM-DD)")
	fl.Float64Var(&f.minDistance, "min-distance", 0, "minimum approach distance in au")
	fl.Float64Var(&f.maxDistance, "max-distance", 0, "maximum approach distance in au")
	fl.Float64Var(&f.minVelocity, "min-velocity", 0, "minimum relative velocity in km/s")
	fl.Float64Var(&f.maxVelocity, "max-velocity", 0, "maximum relative velocity in km/s")
	fl.Float64Var(&f.minDiameter, "min-diameter", 0, "minimum NEO diameter in km")
	fl.Float64Var(&f.maxDiameter, "max-diameter", 0, "maximum NEO diameter in km")
	fl.BoolVar(&f.hazardous, "hazardous", false, "only potentially hazardous NEOs")
	fl.BoolVar(&f.notHazardous, "not-hazardous", false, "only NEOs that are not potentially hazardous")
	fl.IntVarP(&f.limit, "limit", "l", 0, "maximum number of matches (0 for no limit)")
	fl.StringVarP(&f.outfile, "outfile", "o", "", "write matches to this .csv or .json file")
	cmd.MarkFlagsMutuallyExclusive("hazardous", "not-hazardous")
	cmd.MarkFlagsMutuallyExclusive("date", "start-date")
	cmd.MarkFlagsMutuallyExclusive("date", "end-date")

	return cmd
}

// criteria converts the flags that were actually set into query bounds.
func (f *queryFlags) criteria(fs *pflag.FlagSet) (query.Criteria, error) {
	var c query.Criteria
	var err error

	if c.Date, err = parseDateFlag("date", f.date); err != nil {
		return c, err
	}
	if c.StartDate, err = parseDateFlag("start-date", f.startDate); err != nil {
		return c, err
	}
	if c.EndDate, err = parseDateFlag("end-date", f.endDate); err != nil {
		return c, err
	}

	c.DistanceMin = floatFlag(fs, "min-distance", f.minDistance)
	c.DistanceMax = floatFlag(fs, "max-distance", f.maxDistance)
	c.VelocityMin = floatFlag(fs, "min-velocity", f.minVelocity)
	c.VelocityMax = floatFlag(fs, "max-velocity", f.maxVelocity)
	c.DiameterMin = floatFlag(fs, "min-diameter", f.minDiameter)
	c.DiameterMax = floatFlag(fs, "max-diameter", f.maxDiameter)

	switch {
	case f.hazardous:
		v := true
		c.Hazardous = &v
	case f.notHazardous:
		v := false
		c.Hazardous = &v
	}
	return c, nil
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", name, value)
	}
	return &t, nil
}

func floatFlag(fs *pflag.FlagSet, name string, value float64) *float64 {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}
