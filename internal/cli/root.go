// Package cli wires configuration, logging, metrics, and the pipeline into
// the neo command tree.
package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/couchcryptid/neo-data-etl/internal/adapter/file"
	"github.com/couchcryptid/neo-data-etl/internal/catalog"
	"github.com/couchcryptid/neo-data-etl/internal/config"
	"github.com/couchcryptid/neo-data-etl/internal/observability"
	"github.com/couchcryptid/neo-data-etl/internal/pipeline"
	"github.com/spf13/cobra"
)

// app carries the per-invocation dependencies built before any subcommand runs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *observability.Metrics
	pipeline *pipeline.Pipeline
}

// Execute runs the neo command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var neoPath, cadPath string

	cmd := &cobra.Command{
		Use:   "neo",
		Short: "Explore near-Earth objects and their close approaches",
		Long: `neo loads a JPL SBDB near-Earth object CSV export and a close-approach
JSON document, links them by designation, and lets you inspect objects or
query approaches, printing results or saving them as CSV or JSON.

Input paths default to NEO_CSV_PATH and CAD_JSON_PATH.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("neofile") {
				cfg.NEOPath = neoPath
			}
			if cmd.Flags().Changed("cadfile") {
				cfg.CADPath = cadPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = observability.NewLogger(cfg)
			a.metrics = observability.NewMetrics()
			a.pipeline = pipeline.New(file.NewExtractor(cfg.NEOPath, cfg.CADPath, a.logger), a.logger, a.metrics)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&neoPath, "neofile", "", "path to the NEO CSV file (overrides NEO_CSV_PATH)")
	cmd.PersistentFlags().StringVar(&cadPath, "cadfile", "", "path to the close-approach JSON file (overrides CAD_JSON_PATH)")

	cmd.AddCommand(inspectCmd(a))
	cmd.AddCommand(queryCmd(a))
	cmd.AddCommand(validateCmd(a))
	for _, sub := range cmd.Commands() {
		sub.RunE = a.withMetrics(sub.RunE)
	}

	return cmd
}

// withMetrics runs fn and then writes the metrics textfile whether or not fn
// failed, so failed loads still report their counters.
func (a *app) withMetrics(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		runErr := fn(cmd, args)
		if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			a.logger.Error("failed to write metrics textfile", "path", a.cfg.MetricsTextfile, "error", err)
			return errors.Join(runErr, err)
		}
		return runErr
	}
}

// load builds the linked catalog, logging the failure with its input paths.
func (a *app) load(ctx context.Context) (*catalog.Catalog, error) {
	cat, err := a.pipeline.Load(ctx)
	if err != nil {
		a.logger.Error("failed to load catalog",
			"neofile", a.cfg.NEOPath,
			"cadfile", a.cfg.CADPath,
			"error", err,
		)
		return nil, err
	}
	return cat, nil
}
