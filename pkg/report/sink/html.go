package sink

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/daimidata/daimidata/pkg/report"
)

//go:embed report.html.tmpl
var reportTemplate string

// The template uses [[ ]] delimiters so the embedded Vue app keeps its
// native {{ }} syntax untouched.
var htmlTmpl = template.Must(template.New("report").Delims("[[", "]]").Parse(reportTemplate))

// htmlView is the data handed to the report template. The panel payloads
// are pre-marshaled so the Vue app receives them as literal JSON.
type htmlView struct {
	Stats          template.JS
	FirstPhDs      template.JS
	TopSupervisors template.JS
	LongestChains  template.JS
	TopDescendants template.JS
	ReportID       string
	Generated      string
}

// firstPhdView is the subset of a record shown in the chronological panel.
type firstPhdView struct {
	Name        string `json:"name"`
	Year        *int   `json:"year"`
	Title       string `json:"title"`
	Supervisors string `json:"supervisors"`
}

// WriteHTML renders the analysis as a self-contained interactive HTML page
// (Vue 3 + Bulma from CDN, matching the published site).
func WriteHTML(a *report.Analysis, w io.Writer) error {
	firsts := make([]firstPhdView, len(a.FirstPhDs))
	for i, r := range a.FirstPhDs {
		firsts[i] = firstPhdView{Name: r.Name, Year: r.Year, Title: r.Title, Supervisors: r.Supervisors}
	}

	view := htmlView{
		ReportID:  a.ID,
		Generated: a.GeneratedAt.Local().Format("02-01-2006 15:04"),
	}
	var err error
	if view.Stats, err = asJS(a.Stats); err != nil {
		return err
	}
	if view.FirstPhDs, err = asJS(firsts); err != nil {
		return err
	}
	if view.TopSupervisors, err = asJS(a.TopSupervisors); err != nil {
		return err
	}
	if view.LongestChains, err = asJS(a.LongestChains); err != nil {
		return err
	}
	if view.TopDescendants, err = asJS(a.TopDescendants); err != nil {
		return err
	}

	return htmlTmpl.Execute(w, view)
}

// MarshalHTML renders the analysis page into a byte slice.
func MarshalHTML(a *report.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(a, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func asJS(v any) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal view data: %w", err)
	}
	// </script> inside a string literal would end the script block early.
	return template.JS(escapeScriptClose(data)), nil
}

func escapeScriptClose(data []byte) string {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '<' {
			out = append(out, '\\', 'u', '0', '0', '3', 'c')
			continue
		}
		out = append(out, data[i])
	}
	return string(out)
}
