package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/daimidata/daimidata/pkg/phd"
	"github.com/daimidata/daimidata/pkg/pipeline"
	"github.com/daimidata/daimidata/pkg/report"
)

// browseCommand creates the browse command for exploring the analysis in a TUI.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		aliases string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore the genealogy in an interactive TUI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runBrowse(cmd, input, aliases, noCache)
		},
	}

	cmd.Flags().StringVar(&aliases, "aliases", "", "TOML file overriding the built-in name alias table")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

func (c *CLI) runBrowse(cmd *cobra.Command, input, aliases string, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{InputFile: input, AliasFile: aliases}

	var records []phd.Record
	if input != "" {
		records, err = phd.ReadRecordsFile(input)
	} else {
		records, err = runner.Fetch(ctx, pipeOpts)
	}
	if err != nil {
		return err
	}

	_, analysis, err := runner.Analyze(records, pipeOpts)
	if err != nil {
		return err
	}

	model := newBrowseModel(analysis)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// Tab indices for the browse model.
const (
	tabFirst = iota
	tabSupervisors
	tabChains
	tabDescendants
	tabCount
)

var tabLabels = [tabCount]string{"First PhDs", "Top Supervisors", "Longest Chains", "Descendants"}

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	rowSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	rowNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	rowDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseModel is the bubbletea model for the analysis browser.
type browseModel struct {
	analysis *report.Analysis
	tab      int
	cursor   int
	height   int
}

func newBrowseModel(a *report.Analysis) browseModel {
	return browseModel{analysis: a, height: 15}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			m.cursor = 0
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.cursor = 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m browseModel) rowCount() int {
	switch m.tab {
	case tabFirst:
		return len(m.analysis.FirstPhDs)
	case tabSupervisors:
		return len(m.analysis.TopSupervisors)
	case tabChains:
		return len(m.analysis.LongestChains)
	default:
		return len(m.analysis.TopDescendants)
	}
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("PhD supervision genealogy"))
	b.WriteString("  ")
	b.WriteString(rowDimStyle.Render(fmt.Sprintf("%d PhDs · %d supervisors · %s",
		m.analysis.Stats.TotalPhDs, m.analysis.Stats.TotalSupervisors, m.analysis.Stats.YearSpan)))
	b.WriteString("\n")
	b.WriteString(rowDimStyle.Render("←/→ switch tab  ↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	for i, label := range tabLabels {
		if i == m.tab {
			b.WriteString(tabActiveStyle.Render(label))
		} else {
			b.WriteString(tabInactiveStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	for i, line := range m.rows() {
		style := rowNormalStyle
		prefix := "  "
		if i == m.cursor {
			style = rowSelectedStyle
			prefix = "▸ "
		}
		b.WriteString(prefix + style.Render(line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(rowDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, m.rowCount())))
	return b.String()
}

func (m browseModel) rows() []string {
	var lines []string
	switch m.tab {
	case tabFirst:
		for i, r := range m.analysis.FirstPhDs {
			year := "?"
			if r.Year != nil {
				year = fmt.Sprintf("%d", *r.Year)
			}
			lines = append(lines, fmt.Sprintf("#%-3d %s (%s) · %s", i+1, r.Name, year, r.Title))
		}
	case tabSupervisors:
		for i, s := range m.analysis.TopSupervisors {
			lines = append(lines, fmt.Sprintf("#%-3d %s · %d students", i+1, s.Name, s.Count))
		}
	case tabChains:
		for i, chain := range m.analysis.LongestChains {
			lines = append(lines, fmt.Sprintf("#%-3d [%d] %s", i+1, chain.Length, strings.Join(chain.Path, " → ")))
		}
	default:
		for i, d := range m.analysis.TopDescendants {
			lines = append(lines, fmt.Sprintf("#%-3d %s · %d descendants", i+1, d.Name, d.Descendants))
		}
	}
	return lines
}
