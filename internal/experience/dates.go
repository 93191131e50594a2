package experience

import (
	"strings"
	"time"
)

// YearMonth is a calendar month used for duration arithmetic
type YearMonth struct {
	Year  int
	Month int
}

// MonthsUntil returns the number of whole months from ym to end, clamped at zero
func (ym YearMonth) MonthsUntil(end YearMonth) int {
	months := (end.Year-ym.Year)*12 + (end.Month - ym.Month)
	if months < 0 {
		return 0
	}
	return months
}

var dateLayouts = []string{
	"2006-01",
	"2006-01-02",
	"2006/01",
	"01/2006",
	"1/2006",
	"2006",
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
	"Jan, 2006",
	"January, 2006",
}

var presentMarkers = map[string]bool{
	"present": true,
	"current": true,
	"now":     true,
	"today":   true,
	"ongoing": true,
}

// IsPresent reports whether s denotes an ongoing end date such as "Present"
func IsPresent(s string) bool {
	return presentMarkers[strings.ToLower(strings.TrimSpace(s))]
}

// ParseDate parses the date shapes found in resumes. A year-only date resolves to January.
func ParseDate(s string) (YearMonth, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return YearMonth{}, false
	}
	// Month names are matched case-insensitively
	s = titleMonth(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return YearMonth{Year: t.Year(), Month: int(t.Month())}, true
		}
	}
	return YearMonth{}, false
}

func titleMonth(s string) string {
	if s[0] < 'A' || (s[0] > 'Z' && s[0] < 'a') || s[0] > 'z' {
		return s
	}
	fields := strings.SplitN(s, " ", 2)
	word := strings.ToLower(fields[0])
	fields[0] = strings.ToUpper(word[:1]) + word[1:]
	return strings.Join(fields, " ")
}
