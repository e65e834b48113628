package scrape

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/daimidata/daimidata/pkg/dates"
	"github.com/daimidata/daimidata/pkg/errors"
	"github.com/daimidata/daimidata/pkg/names"
	"github.com/daimidata/daimidata/pkg/phd"
)

// Row holds the raw cell text of one table row, before any cleaning.
type Row struct {
	Number      string
	Name        string
	Supervisors string
	Date        string
	Title       string
}

// ExtractRows parses page HTML and returns the data rows of the first table.
// The header row is skipped, as are rows with fewer than five cells (the
// page uses short rows as section separators).
func ExtractRows(page []byte) ([]Row, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse page HTML")
	}

	table := findFirst(doc, "table")
	if table == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no table found in page")
	}

	var rows []Row
	first := true
	for _, tr := range findAll(table, "tr") {
		if first {
			first = false
			continue
		}
		cells := findAll(tr, "td")
		if len(cells) < 5 {
			continue
		}
		rows = append(rows, Row{
			Number:      cellText(cells[0]),
			Name:        cellText(cells[1]),
			Supervisors: cellText(cells[2]),
			Date:        cellText(cells[3]),
			Title:       cellText(cells[4]),
		})
	}
	return rows, nil
}

// Records cleans raw rows into records: dates are repaired and converted to
// ISO form, the defense year is derived, and the candidate name is mapped
// to its canonical form.
func Records(rows []Row, norm *names.Normalizer) []phd.Record {
	records := make([]phd.Record, 0, len(rows))
	for _, row := range rows {
		iso := dates.ToISO(row.Date)
		rec := phd.Record{
			Name:        norm.Normalize(row.Name),
			Supervisors: row.Supervisors,
			DateRaw:     row.Date,
			Date:        iso,
			Title:       row.Title,
		}
		if n, err := strconv.Atoi(row.Number); err == nil {
			rec.Number = n
		}
		if year, ok := dates.Year(iso); ok {
			rec.Year = &year
		}
		records = append(records, rec)
	}
	return records
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

// cellText concatenates all text under a node, collapsing runs of
// whitespace the way a browser renders them.
func cellText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
