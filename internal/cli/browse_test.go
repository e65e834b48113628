package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/daimidata/daimidata/pkg/genealogy"
	"github.com/daimidata/daimidata/pkg/names"
	"github.com/daimidata/daimidata/pkg/phd"
	"github.com/daimidata/daimidata/pkg/report"
)

func browseFixture(t *testing.T) browseModel {
	t.Helper()
	year := 1988
	records := []phd.Record{
		{Number: 1, Name: "Anna Holm", Supervisors: "Brian Mayoh", Year: &year, Title: "Graph Rewriting"},
		{Number: 2, Name: "Carl Berg", Supervisors: "Anna Holm", Title: "Type Systems"},
	}
	g := genealogy.Build(records, names.Default())
	a := report.Assemble(records, g, g.Chains(), g.DescendantCounts(), report.Options{})
	return newBrowseModel(a)
}

func TestBrowseModelTabSwitching(t *testing.T) {
	m := browseFixture(t)

	if m.tab != tabFirst {
		t.Fatalf("initial tab = %d, want %d", m.tab, tabFirst)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(browseModel)
	if m.tab != tabSupervisors {
		t.Errorf("tab after tab key = %d, want %d", m.tab, tabSupervisors)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(browseModel)
	if m.tab != tabFirst {
		t.Errorf("tab after shift+tab = %d, want %d", m.tab, tabFirst)
	}
}

func TestBrowseModelCursorBounds(t *testing.T) {
	m := browseFixture(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(browseModel)
	if m.cursor != 0 {
		t.Errorf("cursor after up at top = %d, want 0", m.cursor)
	}

	for range 10 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(browseModel)
	}
	if m.cursor != m.rowCount()-1 {
		t.Errorf("cursor after repeated down = %d, want %d", m.cursor, m.rowCount()-1)
	}
}

func TestBrowseModelView(t *testing.T) {
	m := browseFixture(t)

	view := m.View()
	for _, want := range []string{"Anna Holm", "First PhDs", "Top Supervisors"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m := browseFixture(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}
