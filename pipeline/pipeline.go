// Package pipeline runs one export: it fetches every query, shapes the rows
// in dependency order, builds the label dictionary and assembles the document.
//
// A failed query aborts the run. A row missing a required binding is skipped
// and reported as a Diagnostic.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/c360studio/sckan2json/export"
	"github.com/c360studio/sckan2json/labels"
	"github.com/c360studio/sckan2json/metrics"
	"github.com/c360studio/sckan2json/shape"
	"github.com/c360studio/sckan2json/sparql"
)

// Options configures a run.
type Options struct {
	// Concurrency bounds parallel query execution. Values <= 1 run the queries
	// sequentially in sparql.All order.
	Concurrency int

	// Validate checks the pruned document against its schema.
	Validate bool

	// Now returns the query date. Defaults to time.Now.
	Now func() time.Time

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics may be nil.
	Metrics *metrics.Metrics
}

// Diagnostic records a skipped row.
type Diagnostic struct {
	Query string
	Row   int
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s row %d: %v", d.Query, d.Row, d.Err)
}

// Stats summarizes a run.
type Stats struct {
	// Rows is the number of rows returned per query.
	Rows map[string]int

	// Rejected is the number of skipped rows per query.
	Rejected map[string]int

	// DuplicateMetadata counts metadata rows that replaced an earlier row for
	// the same neuron.
	DuplicateMetadata int

	Connectivity   int
	NeuronMetadata int
	Segments       int
	Locations      int
	Labels         int
	DOIs           int
}

// Result is the outcome of a successful run.
type Result struct {
	Document    *export.Document
	Tree        map[string]any
	Diagnostics []Diagnostic
	Stats       Stats
}

// Run executes one export against exec.
func Run(ctx context.Context, exec sparql.Executor, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	queryDate := now().UTC()

	rows, err := fetch(ctx, exec, opts.Concurrency, opts.Metrics, logger)
	if err != nil {
		return nil, err
	}

	r := &runner{
		logger:  logger,
		metrics: opts.Metrics,
		stats: Stats{
			Rows:     make(map[string]int, len(rows)),
			Rejected: make(map[string]int, len(rows)),
		},
	}
	for name, rs := range rows {
		r.stats.Rows[name] = len(rs)
	}

	// Connectivity cross-references metadata, so metadata is shaped first.
	index := shape.NewMetadataIndex()
	metadata, rejected := shape.Rows(rows[sparql.NeuronMetadata.Name], shape.NeuronMetadataFromRow)
	r.reject(sparql.NeuronMetadata.Name, rejected)
	for _, m := range metadata {
		if index.Put(m) {
			r.stats.DuplicateMetadata++
			logger.Warn("Duplicate neuron metadata, keeping last row", "neuron", m.ID)
		}
	}

	connectivity, rejected := shape.Rows(rows[sparql.Connectivity.Name], func(row sparql.Row) (shape.ConnectivityEdge, error) {
		return shape.ConnectivityFromRow(row, index)
	})
	r.reject(sparql.Connectivity.Name, rejected)

	segments, rejected := shape.Rows(rows[sparql.PathwaySegments.Name], shape.SegmentFromRow)
	r.reject(sparql.PathwaySegments.Name, rejected)

	locations, rejected := shape.Rows(rows[sparql.Locations.Name], shape.LocationFromRow)
	r.reject(sparql.Locations.Name, rejected)

	synonyms, rejected := shape.Rows(rows[sparql.Synonyms.Name], shape.SynonymFromRow)
	r.reject(sparql.Synonyms.Name, rejected)

	dict := labels.Build(labels.Sources{
		Connectivity: connectivity,
		Segments:     segments,
		Metadata:     index,
		Locations:    locations,
		Synonyms:     synonyms,
	})

	doc, err := export.Assemble(export.Input{
		Connectivity: connectivity,
		Metadata:     index,
		Segments:     segments,
		Locations:    locations,
		Labels:       dict,
		QueryDate:    queryDate,
	})
	if err != nil {
		return nil, fmt.Errorf("assemble document: %w", err)
	}

	tree, err := doc.Tree()
	if err != nil {
		return nil, fmt.Errorf("prune document: %w", err)
	}
	if opts.Validate {
		if err := export.Validate(tree); err != nil {
			return nil, err
		}
	}

	r.count(doc)
	r.metrics.MarkSuccess(queryDate)
	logger.Info("Export assembled",
		"neurons", r.stats.NeuronMetadata,
		"connections", r.stats.Connectivity,
		"segments", r.stats.Segments,
		"locations", r.stats.Locations,
		"labels", r.stats.Labels,
		"rejected_rows", len(r.diagnostics))

	return &Result{
		Document:    doc,
		Tree:        tree,
		Diagnostics: r.diagnostics,
		Stats:       r.stats,
	}, nil
}

type runner struct {
	logger      *slog.Logger
	metrics     *metrics.Metrics
	diagnostics []Diagnostic
	stats       Stats
}

func (r *runner) reject(query string, rejected []shape.RowError) {
	for _, re := range rejected {
		r.logger.Warn("Skipping malformed row", "query", query, "row", re.Row, "error", re.Err)
		r.diagnostics = append(r.diagnostics, Diagnostic{Query: query, Row: re.Row, Err: re.Err})
	}
	r.stats.Rejected[query] += len(rejected)
	r.metrics.RowsRejected(query, len(rejected))
}

func (r *runner) count(doc *export.Document) {
	r.stats.Connectivity = len(doc.NeuralConnectivity)
	r.stats.NeuronMetadata = len(doc.NeuronMetadata)
	r.stats.Segments = len(doc.NeuralSegments)
	r.stats.Locations = len(doc.Locations)
	r.stats.Labels = len(doc.Labels)
	r.stats.DOIs = len(doc.DOIMetadata)

	r.metrics.SetEntities("neural_connectivity", r.stats.Connectivity)
	r.metrics.SetEntities("neuron_metadata", r.stats.NeuronMetadata)
	r.metrics.SetEntities("neural_segments", r.stats.Segments)
	r.metrics.SetEntities("locations", r.stats.Locations)
	r.metrics.SetEntities("labels", r.stats.Labels)
	r.metrics.SetEntities("doi_metadata", r.stats.DOIs)
}

// fetch executes every query and returns the rows keyed by query name.
func fetch(ctx context.Context, exec sparql.Executor, concurrency int, m *metrics.Metrics, logger *slog.Logger) (map[string][]sparql.Row, error) {
	queries := sparql.All()
	slots := make([][]sparql.Row, len(queries))

	run := func(ctx context.Context, i int) error {
		q := queries[i]
		start := time.Now()
		rows, err := exec.Execute(ctx, q)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", q.Name, err)
		}
		elapsed := time.Since(start)
		m.ObserveQuery(q.Name, elapsed, len(rows))
		logger.Debug("Fetched query results", "query", q.Name, "rows", len(rows), "duration", elapsed)
		slots[i] = rows
		return nil
	}

	if concurrency <= 1 {
		for i := range queries {
			if err := run(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i := range queries {
			g.Go(func() error {
				return run(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	out := make(map[string][]sparql.Row, len(queries))
	for i, q := range queries {
		out[q.Name] = slots[i]
	}
	return out, nil
}
