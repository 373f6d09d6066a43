package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/neo-data-etl/internal/catalog"
	"github.com/couchcryptid/neo-data-etl/internal/domain"
	"github.com/couchcryptid/neo-data-etl/internal/observability"
	"github.com/couchcryptid/neo-data-etl/internal/query"
)

// Source reads the raw NEO and close-approach records.
type Source interface {
	NEORecords(ctx context.Context) ([]domain.RawNEO, error)
	ApproachRecords(ctx context.Context) ([]domain.RawApproach, error)
}

// Sink writes linked approaches to their destination.
type Sink interface {
	Write(ctx context.Context, rows []domain.LinkedApproach) error
	Format() string
}

// Pipeline runs extract, construct, and link to build a Catalog, and
// select-then-write to export one.
type Pipeline struct {
	source  Source
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline reading from source.
func New(source Source, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:  source,
		logger:  logger,
		metrics: metrics,
	}
}

// Load reads both datasets, constructs every entity, and links them. Any
// structural, coercion, or linking error aborts the load; no partial catalog
// is returned.
func (p *Pipeline) Load(ctx context.Context) (*catalog.Catalog, error) {
	rawNEOs, rawApproaches, err := p.extract(ctx)
	if err != nil {
		return nil, err
	}

	neos, approaches, err := p.construct(rawNEOs, rawApproaches)
	if err != nil {
		return nil, err
	}

	start := clock.Now()
	cat, err := catalog.New(neos, approaches)
	p.observe("link", start)
	if err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}

	p.logger.Info("catalog loaded", "neos", cat.NEOCount(), "approaches", cat.ApproachCount())
	return cat, nil
}

// Export selects the approaches matching criteria, keeps at most limit of
// them (limit <= 0 keeps all), and writes them to sink. It returns the number
// of rows written.
func (p *Pipeline) Export(ctx context.Context, cat *catalog.Catalog, criteria query.Criteria, limit int, sink Sink) (int, error) {
	start := clock.Now()
	defer p.observe("export", start)

	rows := query.Limit(query.Select(cat.Linked(), query.Filters(criteria)), limit)
	if err := sink.Write(ctx, rows); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}

	p.metrics.RowsWritten.WithLabelValues(sink.Format()).Add(float64(len(rows)))
	return len(rows), nil
}

func (p *Pipeline) extract(ctx context.Context) ([]domain.RawNEO, []domain.RawApproach, error) {
	start := clock.Now()
	defer p.observe("extract", start)

	rawNEOs, err := p.source.NEORecords(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("extract neos: %w", err)
	}
	p.metrics.RecordsExtracted.WithLabelValues(datasetNEOs).Add(float64(len(rawNEOs)))

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	rawApproaches, err := p.source.ApproachRecords(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("extract approaches: %w", err)
	}
	p.metrics.RecordsExtracted.WithLabelValues(datasetApproaches).Add(float64(len(rawApproaches)))

	p.logger.Debug("extracted raw records", "neos", len(rawNEOs), "approaches", len(rawApproaches))
	return rawNEOs, rawApproaches, nil
}

func (p *Pipeline) construct(rawNEOs []domain.RawNEO, rawApproaches []domain.RawApproach) ([]domain.NearEarthObject, []domain.CloseApproach, error) {
	start := clock.Now()
	defer p.observe("construct", start)

	neos, err := BuildNEOs(rawNEOs)
	if err != nil {
		p.metrics.ConstructErrors.WithLabelValues(datasetNEOs).Inc()
		return nil, nil, err
	}

	approaches, err := BuildApproaches(rawApproaches)
	if err != nil {
		p.metrics.ConstructErrors.WithLabelValues(datasetApproaches).Inc()
		return nil, nil, err
	}
	return neos, approaches, nil
}

func (p *Pipeline) observe(stage string, start time.Time) {
	p.metrics.StageDuration.WithLabelValues(stage).Observe(clock.Since(start).Seconds())
}
