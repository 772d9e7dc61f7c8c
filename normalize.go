package hemnet

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat selects which of the two date layouts found on Hemnet result
// pages ParseSwedishDate accepts.
type DateFormat string

// Date layouts used by the sold-listing markup generations.
const (
	DateLong  DateFormat = "long"  // "15 mars 2021"
	DateShort DateFormat = "short" // "Såld 3 apr. 2022"
)

// Locale noise that surrounds the interesting values on the page. The
// prefixes and suffixes are stripped repeatedly so each rule is
// idempotent on its own.
var (
	noisePrefixes = []string{"Begärt pris: ", "Såld ", "Slutpris "}
	noiseSuffixes = []string{" kr/m²", " kr/mån", " kr", " m²", " rum"}

	whitespaceRe = regexp.MustCompile(`\s+`)
	nonNumberRe  = regexp.MustCompile(`[^0-9-]+`)
	bvRe         = regexp.MustCompile(`(?i)bv`)
	floorRe      = regexp.MustCompile(`(?i)^(?:vån )?-?(\d+)`)
	longDateRe   = regexp.MustCompile(`^(\d{1,2}) (\p{L}+) (\d{4})$`)
	shortDateRe  = regexp.MustCompile(`^(?:Såld )?(\d{1,2}) (\p{L}+)\.? (\d{4})$`)
)

var swedishMonths = map[string]time.Month{
	"januari":   time.January,
	"februari":  time.February,
	"mars":      time.March,
	"april":     time.April,
	"maj":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"augusti":   time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// Abbreviations as printed on sold cards ("3 apr. 2022"). "mars" and
// "maj" are printed in full even in the short layout.
var swedishMonthAbbrevs = map[string]time.Month{
	"jan":  time.January,
	"feb":  time.February,
	"mar":  time.March,
	"mars": time.March,
	"apr":  time.April,
	"maj":  time.May,
	"jun":  time.June,
	"jul":  time.July,
	"aug":  time.August,
	"sep":  time.September,
	"okt":  time.October,
	"nov":  time.November,
	"dec":  time.December,
}

// Normalize cleans a raw text fragment read from a listing card: it
// converts non-breaking spaces to plain spaces, collapses whitespace
// runs, strips the known locale prefixes and unit suffixes and trims the
// result. Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	// Stripping one token can expose another that an earlier rule
	// matches ("47 706 kr/m² kr"), so repeat the whole strip phase
	// until the string settles.
	for {
		before := s

		for _, prefix := range noisePrefixes {
			for strings.HasPrefix(s, prefix) {
				s = strings.TrimPrefix(s, prefix)
			}
		}
		for _, suffix := range noiseSuffixes {
			for strings.HasSuffix(s, suffix) {
				s = strings.TrimSuffix(s, suffix)
			}
		}

		if s == before {
			break
		}
	}

	return strings.TrimSpace(s)
}

// ParseSwedishDate parses a Swedish date string into a calendar date with
// no time-of-day component. The long format expects full month names
// ("15 mars 2021"), the short format 3-letter abbreviations with an
// optional "Såld" prefix ("Såld 3 apr. 2022"). Returns EPARSE when the
// day, month or year groups cannot be matched.
func ParseSwedishDate(raw string, format DateFormat) (time.Time, error) {
	var (
		re     *regexp.Regexp
		months map[string]time.Month
	)

	switch format {
	case DateLong:
		re, months = longDateRe, swedishMonths
	case DateShort:
		re, months = shortDateRe, swedishMonthAbbrevs
	default:
		return time.Time{}, Errorf(EINVALID, "unknown date format %q", format)
	}

	m := re.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return time.Time{}, Errorf(EPARSE, "cannot parse date %q", raw)
	}

	month, ok := months[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, Errorf(EPARSE, "unknown month name %q in date %q", m[2], raw)
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, Errorf(EPARSE, "cannot parse day in date %q", raw)
	}

	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, Errorf(EPARSE, "cannot parse year in date %q", raw)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// KeepNumbers strips everything but digits from a string and parses the
// result as an integer, preserving a leading minus sign. An empty result
// parses as 0. Note that this requires a literal "-", not a typographic
// minus.
func KeepNumbers(raw string) int {
	kept := nonNumberRe.ReplaceAllString(raw, "")

	negative := strings.HasPrefix(kept, "-")
	digits := strings.ReplaceAll(kept, "-", "")
	if digits == "" {
		return 0
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	if negative {
		return -n
	}
	return n
}

// ParseLivingArea splits a living-area string into primary and
// supplemental (bi) area. The field varies a lot between cards, f.ex:
//
//	"54,5 m²"    -> 54.5, 0
//	"54,5+10 m²" -> 54.5, 10
//	"bv"         -> 0, 0
func ParseLivingArea(raw string) (area, biArea float64) {
	s := strings.ReplaceAll(raw, "m²", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = bvRe.ReplaceAllString(s, "0")

	parts := strings.SplitN(s, "+", 2)

	area = looseFloat(parts[0])
	if len(parts) == 2 {
		biArea = looseFloat(parts[1])
	}

	return area, biArea
}

// ParseFloor extracts the number that actually represents the floor from
// the varying floor strings found on cards, f.ex "8tr", "8/6", "vån 8"
// and "Vån 8/10". The second return value is false when the string
// contains no leading floor number.
func ParseFloor(raw string) (float64, bool) {
	m := floorRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, false
	}

	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// FormatNumber formats an integer with space-delimited thousand groups,
// the way numbers are displayed on the page ("1 125 000").
func FormatNumber(n int) string {
	s := strconv.Itoa(n)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	return sign + strings.Join(groups, " ")
}

// looseFloat parses a float, tolerating surrounding whitespace and
// returning 0 for garbage.
func looseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// containsDigit reports whether s has at least one ASCII digit. Used to
// tell "no value on the card" apart from a parseable number.
func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
