package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daimidata/daimidata/pkg/archive"
	"github.com/daimidata/daimidata/pkg/phd"
	"github.com/daimidata/daimidata/pkg/pipeline"
	"github.com/daimidata/daimidata/pkg/scrape"
)

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	output   string // output JSON file
	url      string // source page URL
	aliases  string // alias table override
	refresh  bool   // bypass page cache
	noCache  bool   // disable caching entirely
	archive  bool   // store a snapshot of the fetched records
	mongoURI string // snapshot store backend; file-based when empty
}

// fetchCommand creates the fetch command for downloading and cleaning records.
func (c *CLI) fetchCommand() *cobra.Command {
	opts := fetchOpts{output: "data/phd_data.json"}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and clean the dissertation records",
		Long: `Fetch the published dissertation table, repair known date errors,
normalize names, and write the cleaned records as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output JSON file")
	cmd.Flags().StringVar(&opts.url, "url", scrape.SourceURL, "source page URL")
	cmd.Flags().StringVar(&opts.aliases, "aliases", "", "TOML file overriding the built-in name alias table")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the page cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "store a snapshot of the fetched records")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for the snapshot archive (file-based when empty)")

	return cmd
}

func (c *CLI) runFetch(cmd *cobra.Command, opts *fetchOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Fetching dissertation records...")
	spinner.Start()

	records, err := runner.Fetch(ctx, pipeline.Options{
		SourceURL: opts.url,
		AliasFile: opts.aliases,
		Refresh:   opts.refresh,
	})
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Fetched %d records", len(records)))

	if err := phd.WriteRecordsFile(records, opts.output); err != nil {
		return err
	}
	printFile(opts.output)

	if opts.archive {
		store, err := newArchiveStore(ctx, opts.mongoURI)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		snap := archive.NewSnapshot(opts.url, records)
		if err := store.Save(ctx, snap); err != nil {
			return err
		}
		printDetail("Archived snapshot %s", snap.ID)
	}

	printNewline()
	printNextStep("Build the report", appName+" render "+opts.output)
	return nil
}

// newArchiveStore opens the snapshot store selected by the flags.
func newArchiveStore(ctx context.Context, mongoURI string) (archive.Store, error) {
	if mongoURI != "" {
		return archive.NewMongoStore(ctx, mongoURI)
	}
	dir, err := archiveDir()
	if err != nil {
		return nil, err
	}
	return archive.NewFileStore(dir)
}
