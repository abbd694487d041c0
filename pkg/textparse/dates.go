package textparse

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// datePatterns are the three date grammars in the order extraction applies
// them. The flight extractor relies on this ordering for positional pairing.
var datePatterns = []*regexp.Regexp{
	dateNumericPattern,
	dateWrittenPattern,
	dateEuropeanPattern,
}

// dateLayouts are tried in order by NormalizeDate. The canonical form comes
// first so normalization is idempotent. Numeric dates are treated as
// month-first; a day-first reading of an ambiguous date like 03/04/2025 is a
// known limitation, not something this parser can resolve.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// NormalizeDate converts a human date string to canonical YYYY-MM-DD form.
// Unparseable input yields the empty string, never an error.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// ExtractDates collects every date-like occurrence in the text across all
// three grammars, normalized, deduplicated, and sorted.
func ExtractDates(text string) []string {
	seen := make(map[string]bool)
	dates := []string{}
	for _, raw := range collectDateMatches(text) {
		normalized := NormalizeDate(raw)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		dates = append(dates, normalized)
	}
	sort.Strings(dates)
	return dates
}

// collectDateMatches returns raw date match strings in grammar order, then
// occurrence order within each grammar.
func collectDateMatches(text string) []string {
	var matches []string
	for _, p := range datePatterns {
		matches = append(matches, p.FindAllString(text, -1)...)
	}
	return matches
}
