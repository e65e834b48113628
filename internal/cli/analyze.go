package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daimidata/daimidata/pkg/phd"
	"github.com/daimidata/daimidata/pkg/pipeline"
	"github.com/daimidata/daimidata/pkg/report"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	input       string // records JSON file; fetches when empty
	aliases     string // alias table override
	noCache     bool
	supervisors int // top supervisor rows to print
	chains      int // chain rows to print
	descendants int // descendant rows to print
}

// analyzeCommand creates the analyze command for terminal summaries.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{supervisors: 10, chains: 5, descendants: 10}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Print genealogy statistics and rankings",
		Long: `Build the supervision graph from a records file (or a fresh fetch when
no file is given) and print the key rankings in the terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.input = args[0]
			}
			return c.runAnalyze(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.aliases, "aliases", "", "TOML file overriding the built-in name alias table")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().IntVar(&opts.supervisors, "supervisors", opts.supervisors, "number of top supervisors to show")
	cmd.Flags().IntVar(&opts.chains, "chains", opts.chains, "number of longest chains to show")
	cmd.Flags().IntVar(&opts.descendants, "descendants", opts.descendants, "number of descendant rankings to show")

	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, opts *analyzeOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		InputFile: opts.input,
		AliasFile: opts.aliases,
		Report: report.Options{
			TopSupervisors: opts.supervisors,
			TopChains:      opts.chains,
			TopDescendants: opts.descendants,
		},
	}

	var records []phd.Record
	if opts.input != "" {
		records, err = phd.ReadRecordsFile(opts.input)
	} else {
		records, err = runner.Fetch(ctx, pipeOpts)
	}
	if err != nil {
		return err
	}

	g, analysis, err := runner.Analyze(records, pipeOpts)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Supervision genealogy"))
	printStats(len(records), g.SupervisorCount(), g.EdgeCount(), opts.input != "")
	printNewline()

	printKeyValue("PhDs", fmt.Sprintf("%d", analysis.Stats.TotalPhDs))
	printKeyValue("Supervisors", fmt.Sprintf("%d", analysis.Stats.TotalSupervisors))
	printKeyValue("Years", analysis.Stats.YearSpan)
	printNewline()

	fmt.Println(StyleTitle.Render("Top supervisors"))
	for i, s := range analysis.TopSupervisors {
		printDetail("%2d. %s (%d students)", i+1, s.Name, s.Count)
	}
	printNewline()

	fmt.Println(StyleTitle.Render("Longest supervision chains"))
	for i, chain := range analysis.LongestChains {
		printDetail("%2d. %s", i+1, strings.Join(chain.Path, " "+iconArrow+" "))
	}
	printNewline()

	fmt.Println(StyleTitle.Render("Most academic descendants"))
	for i, d := range analysis.TopDescendants {
		printDetail("%2d. %s (%d descendants)", i+1, d.Name, d.Descendants)
	}

	printNewline()
	printNextStep("Render the report", appName+" render")
	return nil
}
