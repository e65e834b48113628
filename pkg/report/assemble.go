// Package report aggregates the genealogy analysis into the structure the
// presentation layer consumes: chronological panel, supervisor rankings,
// longest chains, and descendant rankings, plus aggregate stats.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/daimidata/daimidata/pkg/genealogy"
	"github.com/daimidata/daimidata/pkg/phd"
)

// Default panel sizes, matching the published site.
const (
	DefaultFirstN         = 10
	DefaultTopSupervisors = 10
	DefaultTopChains      = 5
	DefaultTopDescendants = 10
)

// Options controls how many entries each report panel keeps.
// Zero values fall back to the defaults.
type Options struct {
	FirstN         int
	TopSupervisors int
	TopChains      int
	TopDescendants int
}

func (o *Options) setDefaults() {
	if o.FirstN <= 0 {
		o.FirstN = DefaultFirstN
	}
	if o.TopSupervisors <= 0 {
		o.TopSupervisors = DefaultTopSupervisors
	}
	if o.TopChains <= 0 {
		o.TopChains = DefaultTopChains
	}
	if o.TopDescendants <= 0 {
		o.TopDescendants = DefaultTopDescendants
	}
}

// SupervisorCount ranks a supervisor by direct student count.
type SupervisorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DescendantCount ranks a supervisor by total descendant-set size.
type DescendantCount struct {
	Name        string `json:"name"`
	Descendants int    `json:"descendants"`
}

// Stats holds dataset-level aggregates.
type Stats struct {
	TotalPhDs        int    `json:"total_phds"`
	TotalSupervisors int    `json:"total_supervisors"`
	YearSpan         string `json:"year_span"`
}

// Analysis is the assembled result handed to the presentation layer.
type Analysis struct {
	ID             string            `json:"id"`
	GeneratedAt    time.Time         `json:"generated_at"`
	FirstPhDs      []phd.Record      `json:"first_phds"`
	TopSupervisors []SupervisorCount `json:"top_supervisors"`
	LongestChains  []genealogy.Chain `json:"longest_chains"`
	TopDescendants []DescendantCount `json:"top_descendants"`
	Stats          Stats             `json:"stats"`
}

// Assemble combines the record list, the supervision graph, the chain list,
// and per-supervisor descendant counts into an Analysis. Inputs are not
// mutated. All rankings are deterministic: count descending with canonical
// name ascending as the secondary key, so repeated runs on identical input
// produce identical output.
func Assemble(records []phd.Record, g *genealogy.Graph, chains []genealogy.Chain, descendants map[string]int, opts Options) *Analysis {
	opts.setDefaults()

	return &Analysis{
		ID:             uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		FirstPhDs:      firstRecords(records, opts.FirstN),
		TopSupervisors: topSupervisors(g, opts.TopSupervisors),
		LongestChains:  topChains(chains, opts.TopChains),
		TopDescendants: topDescendants(g, descendants, opts.TopDescendants),
		Stats:          stats(records, g),
	}
}

// firstRecords sorts a copy of records chronologically (missing year sorts
// last, then name ascending) and keeps the first n.
func firstRecords(records []phd.Record, n int) []phd.Record {
	sorted := append([]phd.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		yi, yj := sortYear(sorted[i]), sortYear(sorted[j])
		if yi != yj {
			return yi < yj
		}
		return sorted[i].Name < sorted[j].Name
	})
	return truncate(sorted, n)
}

func sortYear(r phd.Record) int {
	if r.Year == nil {
		return math.MaxInt
	}
	return *r.Year
}

func topSupervisors(g *genealogy.Graph, n int) []SupervisorCount {
	ranked := make([]SupervisorCount, 0, g.SupervisorCount())
	for _, name := range g.Supervisors() {
		ranked = append(ranked, SupervisorCount{Name: name, Count: len(g.Students(name))})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	return truncate(ranked, n)
}

func topChains(chains []genealogy.Chain, n int) []genealogy.Chain {
	// Chains arrive sorted by descending length already.
	return truncate(chains, n)
}

func topDescendants(g *genealogy.Graph, descendants map[string]int, n int) []DescendantCount {
	ranked := make([]DescendantCount, 0, len(descendants))
	for _, name := range g.Supervisors() {
		if count, ok := descendants[name]; ok {
			ranked = append(ranked, DescendantCount{Name: name, Descendants: count})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Descendants != ranked[j].Descendants {
			return ranked[i].Descendants > ranked[j].Descendants
		}
		return ranked[i].Name < ranked[j].Name
	})
	return truncate(ranked, n)
}

func stats(records []phd.Record, g *genealogy.Graph) Stats {
	s := Stats{
		TotalPhDs:        len(records),
		TotalSupervisors: g.SupervisorCount(),
	}

	minYear, maxYear := 0, 0
	for _, r := range records {
		if r.Year == nil {
			continue
		}
		if minYear == 0 || *r.Year < minYear {
			minYear = *r.Year
		}
		if *r.Year > maxYear {
			maxYear = *r.Year
		}
	}
	if minYear != 0 {
		s.YearSpan = fmt.Sprintf("%d-%d", minYear, maxYear)
	}
	return s
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
