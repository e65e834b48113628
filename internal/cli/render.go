package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daimidata/daimidata/pkg/errors"
	"github.com/daimidata/daimidata/pkg/pipeline"
	"github.com/daimidata/daimidata/pkg/report"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file or base path
	formats     []string // output formats: html, json, dot, svg, png
	aliases     string   // alias table override
	refresh     bool     // bypass the page cache
	noCache     bool     // disable caching entirely
	first       int      // chronological panel size
	supervisors int      // supervisor ranking size
	chains      int      // chain ranking size
	descendants int      // descendant ranking size
}

// renderCommand creates the render command for generating report artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{output: "index"}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the genealogy report",
		Long: `Render the genealogy report from a records file, or from a fresh fetch
when no file is given.

Formats:
  html  interactive report page (default)
  json  full analysis document
  dot   supervision graph in Graphviz DOT format
  svg   supervision graph rendered with Graphviz
  png   supervision graph rendered with Graphviz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.aliases, "aliases", "", "TOML file overriding the built-in name alias table")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the page cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().IntVar(&opts.first, "first", 0, "entries in the first-PhDs panel (default 10)")
	cmd.Flags().IntVar(&opts.supervisors, "supervisors", 0, "entries in the supervisor ranking (default 10)")
	cmd.Flags().IntVar(&opts.chains, "chains", 0, "entries in the chain ranking (default 5)")
	cmd.Flags().IntVar(&opts.descendants, "descendants", 0, "entries in the descendant ranking (default 10)")

	return cmd
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !pipeline.ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'html', 'json', 'dot', 'svg', or 'png')", f)
		}
	}
	return nil
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		InputFile: input,
		AliasFile: opts.aliases,
		Formats:   opts.formats,
		Refresh:   opts.refresh,
		Report: report.Options{
			FirstN:         opts.first,
			TopSupervisors: opts.supervisors,
			TopChains:      opts.chains,
			TopDescendants: opts.descendants,
		},
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(result.Artifacts)))

	printSuccess("Report generated")
	printStats(len(result.Records), result.Graph.SupervisorCount(), result.Graph.EdgeCount(), input != "")

	for _, f := range opts.formats {
		path := outputPath(opts.output, f, len(opts.formats) > 1)
		if err := writeArtifact(path, result.Artifacts[f]); err != nil {
			return err
		}
		printFile(path)
	}

	printNewline()
	printNextStep("Preview the report", appName+" serve")
	return nil
}

// outputPath derives the destination file for one format. With a single
// format the output is used as-is when it already carries an extension.
func outputPath(output, format string, multiple bool) string {
	ext := filepath.Ext(output)
	if !multiple && ext != "" {
		return output
	}
	base := strings.TrimSuffix(output, ext)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] || ext == "" {
		return base + "." + format
	}
	return output + "." + format
}

// writeArtifact writes rendered bytes, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
