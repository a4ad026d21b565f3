package pipeline

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// dayFirstLayouts are tried in order by SafeParseDate. Supplier files write
// dates day-first; the ISO form is accepted so already-clean values pass
// through the parser unchanged.
var dayFirstLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2.1.06",
	"2006-1-2",
	"2006-01-02T15:04:05Z07:00",
	"2 January 2006",
	"2 Jan 2006",
}

// AvailabilityMarker introduces a free-text date range in supplier notes,
// e.g. "Disponibil: 01/05/24 : 30/06/24". Matched case-insensitively.
var AvailabilityMarker = "disponibil"

var reISODate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SafeParseDate attempts a day-first parse and canonicalizes to YYYY-MM-DD.
// Unparseable input is returned untouched so later stages can still recover
// a date from it.
func SafeParseDate(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return value
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

// RecoverLiteralRange scans the raw Start text for the availability marker
// followed by two day-first dates and, when found, returns the pair as
// canonical ISO start and end. It does not fire when start is already a
// clean date; then both inputs pass through unchanged.
func RecoverLiteralRange(start, end string) (string, string) {
	if reISODate.MatchString(strings.TrimSpace(start)) {
		return start, end
	}
	lower := strings.ToLower(start)
	idx := strings.Index(lower, strings.ToLower(AvailabilityMarker))
	if idx < 0 {
		return start, end
	}

	reDate := regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
	found := reDate.FindAllString(start[idx:], 2)
	if len(found) != 2 {
		return start, end
	}
	s := SafeParseDate(found[0])
	e := SafeParseDate(found[1])
	if !reISODate.MatchString(s) || !reISODate.MatchString(e) {
		return start, end
	}
	return s, e
}

// MonthsBetween computes the fractional month span of a canonical ISO
// start/end pair: the remaining share of the start month (start day
// inclusive), plus whole calendar months strictly between, plus the elapsed
// share of the end month (end day inclusive). Rounded to 2 decimals.
// Returns false for unparseable dates or start after end.
func MonthsBetween(startISO, endISO string) (float64, bool) {
	start, err := time.Parse("2006-01-02", strings.TrimSpace(startISO))
	if err != nil {
		return 0, false
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(endISO))
	if err != nil {
		return 0, false
	}
	if start.After(end) {
		return 0, false
	}

	startMonth := start.Year()*12 + int(start.Month()) - 1
	endMonth := end.Year()*12 + int(end.Month()) - 1

	var months float64
	if startMonth == endMonth {
		months = float64(end.Day()-start.Day()+1) / float64(daysInMonth(start))
	} else {
		first := float64(daysInMonth(start)-start.Day()+1) / float64(daysInMonth(start))
		last := float64(end.Day()) / float64(daysInMonth(end))
		months = first + float64(endMonth-startMonth-1) + last
	}
	return math.Round(months*100) / 100, true
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
