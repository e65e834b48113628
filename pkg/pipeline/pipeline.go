// Package pipeline provides the core fetch → analyze → render pipeline.
//
// This package implements the complete pipeline shared by the CLI commands
// and the report server. By centralizing this logic, every entry point
// repairs dates, normalizes names, and ranks results the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Retrieve the published dissertation table and clean it into records
//  2. Analyze: Build the supervision graph, find chains, count descendants
//  3. Render: Generate the report in various formats (HTML, JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"html"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
package pipeline

import (
	"time"

	"github.com/daimidata/daimidata/pkg/errors"
	"github.com/daimidata/daimidata/pkg/genealogy"
	"github.com/daimidata/daimidata/pkg/phd"
	"github.com/daimidata/daimidata/pkg/report"
	"github.com/daimidata/daimidata/pkg/scrape"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options configures a pipeline run.
type Options struct {
	// SourceURL is the page to fetch. Defaults to the department page.
	SourceURL string

	// InputFile reads records from a JSON file instead of fetching.
	// Takes precedence over SourceURL when set.
	InputFile string

	// AliasFile overrides the built-in name alias table.
	AliasFile string

	// Formats lists the artifacts to render. Defaults to ["html"].
	Formats []string

	// Refresh bypasses the page cache.
	Refresh bool

	// Report controls panel sizes in the assembled analysis.
	Report report.Options
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.SourceURL == "" {
		o.SourceURL = scrape.SourceURL
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown output format: %s", f)
		}
	}
	return nil
}

// Stats captures per-stage timings of a pipeline run.
type Stats struct {
	FetchTime   time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// Result holds the outcome of a pipeline run.
type Result struct {
	// Records is the cleaned record set the analysis was built from.
	Records []phd.Record

	// Graph is the supervision graph.
	Graph *genealogy.Graph

	// Analysis is the assembled report content.
	Analysis *report.Analysis

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	// Stats holds per-stage timings.
	Stats Stats
}
