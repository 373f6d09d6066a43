package cli

import (
	"fmt"
	"io"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func inspectCmd(a *app) *cobra.Command {
	var pdes, name string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show one NEO by designation or name",
		Example: `  neo inspect --pdes 433
  neo inspect --name Apophis --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			var (
				neo domain.NearEarthObject
				ok  bool
			)
			if pdes != "" {
				neo, ok = cat.NEOByDesignation(pdes)
			} else {
				neo, ok = cat.NEOByName(name)
			}

			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "No matching NEOs exist in the database.")
				return nil
			}

			printNEO(out, neo)
			if verbose {
				for _, ca := range cat.ApproachesFor(neo.Designation) {
					fmt.Fprintf(out, "- %s\n", domain.LinkedApproach{Approach: ca, NEO: neo})
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pdes, "pdes", "p", "", "primary designation of the NEO")
	cmd.Flags().StringVarP(&name, "name", "n", "", "IAU name of the NEO")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also list the NEO's close approaches")
	cmd.MarkFlagsOneRequired("pdes", "name")
	cmd.MarkFlagsMutuallyExclusive("pdes", "name")

	return cmd
}

func printNEO(w io.Writer, neo domain.NearEarthObject) {
	diameter := "an unknown diameter"
	if neo.DiameterKnown() {
		diameter = fmt.Sprintf("a diameter of %.3f km", neo.Diameter)
	}

	phrase := color.New(color.FgGreen).Sprint(neo.HazardPhrase())
	if neo.Hazardous {
		phrase = color.New(color.FgRed, color.Bold).Sprint(neo.HazardPhrase())
	}

	fmt.Fprintf(w, "NEO %s has %s and %s potentially hazardous.\n", neo.FullName(), diameter, phrase)
}
