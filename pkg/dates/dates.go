// Package dates repairs and normalizes the defense-date strings from the
// source table. The published table carries a handful of typos (three- and
// five-digit years); these are fixed before parsing so that year extraction
// and chronological sorting work on as many rows as possible.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// knownFixes maps verbatim bad date strings to their corrected form.
// These are confirmed data-entry errors in the source table.
var knownFixes = map[string]string{
	"13-03-20015": "13-03-2015",
	"08-12-20017": "08-12-2017",
	"19-05-215":   "19-05-2015",
}

var (
	threeDigitYear = regexp.MustCompile(`^(\d{2}-\d{2}-)(\d{3})$`)
	fiveDigitYear  = regexp.MustCompile(`^(\d{2}-\d{2}-)(\d{5})$`)
)

// Repair fixes common year typos in a DD-MM-YYYY date string.
// Unknown or already-valid strings are returned unchanged.
func Repair(raw string) string {
	if raw == "" {
		return raw
	}
	if fixed, ok := knownFixes[raw]; ok {
		return fixed
	}

	// Three-digit years like 215 instead of 2015
	if m := threeDigitYear.FindStringSubmatch(raw); m != nil {
		if strings.HasPrefix(m[2], "21") {
			return m[1] + "20" + m[2][1:]
		}
	}

	// Five-digit years like 20015 instead of 2015
	if m := fiveDigitYear.FindStringSubmatch(raw); m != nil {
		if strings.HasPrefix(m[2], "200") {
			return m[1] + "20" + m[2][3:]
		}
	}

	return raw
}

// ToISO repairs raw and converts it from DD-MM-YYYY to ISO YYYY-MM-DD.
// If the repaired string still doesn't parse, it is returned as-is so the
// caller can keep the original text for display.
func ToISO(raw string) string {
	if raw == "" {
		return ""
	}
	repaired := Repair(raw)
	t, err := time.Parse("02-01-2006", repaired)
	if err != nil {
		return repaired
	}
	return t.Format("2006-01-02")
}

// Year extracts the year from an ISO-formatted date string.
// Returns false when the leading component is not a number.
func Year(iso string) (int, bool) {
	if iso == "" {
		return 0, false
	}
	head, _, _ := strings.Cut(iso, "-")
	y, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return y, true
}
