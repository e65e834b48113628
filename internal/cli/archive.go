package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daimidata/daimidata/pkg/archive"
	"github.com/daimidata/daimidata/pkg/errors"
	"github.com/daimidata/daimidata/pkg/phd"
)

// archiveCommand creates the archive management command.
func (c *CLI) archiveCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect stored record snapshots",
	}
	cmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for the snapshot archive (file-based when empty)")

	cmd.AddCommand(c.archiveListCommand(&mongoURI))
	cmd.AddCommand(c.archiveExportCommand(&mongoURI))

	return cmd
}

// archiveListCommand creates the "archive list" subcommand.
func (c *CLI) archiveListCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := newArchiveStore(ctx, *mongoURI)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			infos, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("Archive is empty")
				return nil
			}
			for _, info := range infos {
				printDetail("%s  %s  %d records",
					info.FetchedAt.Local().Format("2006-01-02 15:04"), info.ID, info.Count)
			}
			return nil
		},
	}
}

// archiveExportCommand creates the "archive export" subcommand.
func (c *CLI) archiveExportCommand(mongoURI *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a snapshot's records as JSON (latest when no id is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := newArchiveStore(ctx, *mongoURI)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			snap, err := selectSnapshot(ctx, store, id)
			if err != nil {
				return err
			}

			if output == "" {
				return phd.WriteRecords(snap.Records, cmd.OutOrStdout())
			}
			if err := phd.WriteRecordsFile(snap.Records, output); err != nil {
				return err
			}
			printSuccess("Exported %s", fmt.Sprintf("%d records from %s", len(snap.Records), snap.FetchedAt.Local().Format("2006-01-02")))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// selectSnapshot resolves the snapshot to export: the one with the given
// id, or the newest when id is empty. Only the needed accessor is hit.
func selectSnapshot(ctx context.Context, store archive.Store, id string) (*archive.Snapshot, error) {
	var (
		snap *archive.Snapshot
		err  error
	)
	if id != "" {
		snap, err = store.Get(ctx, id)
	} else {
		snap, err = store.Latest(ctx)
	}
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no such snapshot")
	}
	return snap, nil
}
