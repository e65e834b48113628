// Package names normalizes person names and splits free-text supervisor
// fields into individual names.
//
// Normalization is an exact-match lookup against a single hand-maintained
// alias table (aliases.toml). There is no fuzzy matching: a name either has
// a known canonical form or passes through unchanged. The table is loaded
// once and shared everywhere normalization happens, so every stage of the
// pipeline agrees on canonical forms.
package names

import (
	"regexp"
	"strings"
)

// supervisorSep matches the separators seen in the supervisor column:
// a comma, or the words "and", "&", "og" surrounded by whitespace.
var supervisorSep = regexp.MustCompile(`,\s*|\s+and\s+|\s+&\s+|\s+og\s+`)

// ParseSupervisors splits a free-text supervisor field into individual
// names, in order of appearance. Pieces are whitespace-trimmed and empty
// pieces are dropped. An empty input yields nil.
func ParseSupervisors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, piece := range supervisorSep.Split(raw, -1) {
		if s := strings.TrimSpace(piece); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Normalizer maps known alias strings to canonical display names.
// The zero value is not usable; obtain one via Default or Load.
type Normalizer struct {
	aliases map[string]string
}

// Normalize returns the canonical form of raw if it exactly matches a known
// alias, otherwise raw unchanged. Normalize is idempotent: canonical names
// are never themselves alias keys.
func (n *Normalizer) Normalize(raw string) string {
	if canonical, ok := n.aliases[raw]; ok {
		return canonical
	}
	return raw
}

// NormalizeAll maps Normalize over a slice, preserving order.
func (n *Normalizer) NormalizeAll(raw []string) []string {
	if raw == nil {
		return nil
	}
	out := make([]string, len(raw))
	for i, s := range raw {
		out[i] = n.Normalize(s)
	}
	return out
}

// Len returns the number of alias entries.
func (n *Normalizer) Len() int { return len(n.aliases) }
