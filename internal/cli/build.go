package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daimidata/daimidata/pkg/archive"
	"github.com/daimidata/daimidata/pkg/phd"
	"github.com/daimidata/daimidata/pkg/pipeline"
	"github.com/daimidata/daimidata/pkg/scrape"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	outDir   string   // output directory for the site
	url      string   // source page URL
	aliases  string   // alias table override
	formats  []string // artifacts to generate
	refresh  bool
	noCache  bool
	archive  bool
	mongoURI string
}

// buildCommand creates the build command: fetch plus render in one step.
// This is the command a scheduled job runs to regenerate the whole site.
func (c *CLI) buildCommand() *cobra.Command {
	var formatsStr string
	opts := buildOpts{outDir: "site"}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fetch records and render the full report site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runBuild(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", opts.outDir, "output directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "html,json", "artifacts to generate (comma-separated)")
	cmd.Flags().StringVar(&opts.url, "url", scrape.SourceURL, "source page URL")
	cmd.Flags().StringVar(&opts.aliases, "aliases", "", "TOML file overriding the built-in name alias table")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the page cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "store a snapshot of the fetched records")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for the snapshot archive (file-based when empty)")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, opts *buildOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		SourceURL: opts.url,
		AliasFile: opts.aliases,
		Formats:   opts.formats,
		Refresh:   opts.refresh,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built report from %d records", len(result.Records)))

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}
	recordsPath := filepath.Join(opts.outDir, "phd_data.json")
	if err := phd.WriteRecordsFile(result.Records, recordsPath); err != nil {
		return err
	}

	printSuccess("Site built")
	printStats(len(result.Records), result.Graph.SupervisorCount(), result.Graph.EdgeCount(), false)
	printFile(recordsPath)

	for _, f := range opts.formats {
		name := "index." + f
		if f != pipeline.FormatHTML {
			name = "report." + f
		}
		path := filepath.Join(opts.outDir, name)
		if err := writeArtifact(path, result.Artifacts[f]); err != nil {
			return err
		}
		printFile(path)
	}

	if opts.archive {
		store, err := newArchiveStore(ctx, opts.mongoURI)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		snap := archive.NewSnapshot(opts.url, result.Records)
		if err := store.Save(ctx, snap); err != nil {
			return err
		}
		printDetail("Archived snapshot %s", snap.ID)
	}

	printNewline()
	printNextStep("Preview the site", appName+" serve "+opts.outDir)
	return nil
}
