package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/daimidata/daimidata/pkg/cache"
	"github.com/daimidata/daimidata/pkg/errors"
	"github.com/daimidata/daimidata/pkg/genealogy"
	"github.com/daimidata/daimidata/pkg/names"
	"github.com/daimidata/daimidata/pkg/phd"
	"github.com/daimidata/daimidata/pkg/report"
	"github.com/daimidata/daimidata/pkg/report/sink"
	"github.com/daimidata/daimidata/pkg/scrape"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating the stage logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results between runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete fetch → analyze → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	records, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Records = records
	result.Stats.FetchTime = time.Since(fetchStart)

	r.Logger.Info("fetched records",
		"records", len(records),
		"duration", result.Stats.FetchTime)

	// Stage 2: Analyze
	analyzeStart := time.Now()
	g, analysis, err := r.Analyze(records, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Analysis = analysis
	result.Stats.AnalyzeTime = time.Since(analyzeStart)

	r.Logger.Info("analyzed genealogy",
		"supervisors", g.SupervisorCount(),
		"edges", g.EdgeCount(),
		"chains", len(analysis.LongestChains),
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, g, analysis, opts.Formats)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered report",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Fetch produces the cleaned record set, either from a local JSON file or
// by scraping the source page.
func (r *Runner) Fetch(ctx context.Context, opts Options) ([]phd.Record, error) {
	if opts.InputFile != "" {
		records, err := phd.ReadRecordsFile(opts.InputFile)
		if err != nil {
			return nil, err
		}
		return records, nil
	}

	norm, err := r.normalizer(opts)
	if err != nil {
		return nil, err
	}

	url := opts.SourceURL
	if url == "" {
		url = scrape.SourceURL
	}

	client := scrape.NewClient(r.Cache)
	page, err := client.FetchPage(ctx, url, opts.Refresh)
	if err != nil {
		return nil, err
	}
	rows, err := scrape.ExtractRows(page)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRecords, "no data rows in %s", url)
	}
	return scrape.Records(rows, norm), nil
}

// Analyze builds the supervision graph and assembles the ranked analysis.
func (r *Runner) Analyze(records []phd.Record, opts Options) (*genealogy.Graph, *report.Analysis, error) {
	if len(records) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidRecords, "no records to analyze")
	}
	norm, err := r.normalizer(opts)
	if err != nil {
		return nil, nil, err
	}

	g := genealogy.Build(records, norm)
	analysis := report.Assemble(records, g, g.Chains(), g.DescendantCounts(), opts.Report)
	return g, analysis, nil
}

// Render produces the requested artifacts from an analysis.
func (r *Runner) Render(ctx context.Context, g *genealogy.Graph, a *report.Analysis, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, f := range formats {
		var (
			data []byte
			err  error
		)
		switch f {
		case FormatHTML:
			data, err = sink.MarshalHTML(a)
		case FormatJSON:
			data, err = sink.MarshalJSON(a)
		case FormatDOT:
			data = []byte(sink.ToDOT(g))
		case FormatSVG:
			data, err = sink.RenderSVG(ctx, sink.ToDOT(g))
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, sink.ToDOT(g))
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unknown output format: %s", f)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}

func (r *Runner) normalizer(opts Options) (*names.Normalizer, error) {
	if opts.AliasFile != "" {
		return names.Load(opts.AliasFile)
	}
	return names.Default(), nil
}
