// Package normalize turns raw spreadsheet cell values into canonical
// comparison keys and typed values. Parse failures are silent: a value that
// cannot be coerced is missing, not an error.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var markupRe = regexp.MustCompile(`<[^>]+>`)

// Key produces the canonical identity key for a free-text value: markup
// fragments stripped, lowercased, punctuation replaced with spaces and runs
// of whitespace collapsed. An empty result means "no identity available".
func Key(s string) string {
	s = markupRe.ReplaceAllString(s, "")
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// CleanText collapses whitespace (including non-breaking spaces) and trims.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"01-02-2006",
	time.RFC3339,
}

// Date coerces a loose date string. Unparseable input yields nil.
func Date(s string) *time.Time {
	s = CleanText(s)
	if s == "" {
		return nil
	}

	// Timestamps exported from spreadsheets often carry a time suffix.
	if i := strings.IndexAny(s, " T"); i > 0 && i >= 8 {
		s = s[:i]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Salary coerces a loose currency string to a numeric value. Unparseable or
// absent input yields 0, which downstream scoring treats as "no salary data".
func Salary(s string) float64 {
	s = CleanText(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Int coerces a loose integer string. The second return reports success.
func Int(s string) (int, bool) {
	s = CleanText(s)
	if s == "" {
		return 0, false
	}

	// Spreadsheet numerics frequently arrive as "7.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// SameDay reports whether two optional dates fall on the same calendar day.
// A missing date on either side never corroborates.
func SameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameSite reports whether one site string is a case-insensitive substring
// of the other, in either direction. Empty sites never corroborate.
func SameSite(a, b string) bool {
	a = strings.ToLower(CleanText(a))
	b = strings.ToLower(CleanText(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
