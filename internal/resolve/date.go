// Package resolve turns the ambiguous pieces of a proposed call into concrete
// values: natural-language dates into calendar dates, and implicit job
// references into job ids. Both resolvers are pure functions of their inputs;
// the anchor date is always passed explicitly so concurrent turns can never
// observe each other's "today".
package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var (
	isoRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	relativeRe = regexp.MustCompile(`(\d+)\s+(day|week|month)s?\s+(ago|from now)`)
	weekdayRe  = regexp.MustCompile(`(last|next)\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)`)
	dayOfMonRe = regexp.MustCompile(`the\s+(\d{1,2})(st|nd|rd|th)?`)
	monthDayRe = regexp.MustCompile(`(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\s+(\d{1,2})`)
)

var weekdayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// Date converts a natural-language date expression to YYYY-MM-DD, anchored to
// the caller's local date. Expressions it does not recognize are returned
// unchanged; the owning operation's validation rejects them if invalid.
func Date(expr string, anchor time.Time) string {
	lower := strings.ToLower(strings.TrimSpace(expr))
	now := midnight(anchor)

	// Exact format passes through.
	if isoRe.MatchString(strings.TrimSpace(expr)) {
		return strings.TrimSpace(expr)
	}

	switch lower {
	case "today":
		return now.Format(isoDate)
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(isoDate)
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(isoDate)
	}

	// Relative offsets: "3 days ago", "2 weeks from now".
	if m := relativeRe.FindStringSubmatch(lower); m != nil {
		amount, _ := strconv.Atoi(m[1])
		direction := 1
		if m[3] == "ago" {
			direction = -1
		}
		switch m[2] {
		case "day":
			return now.AddDate(0, 0, amount*direction).Format(isoDate)
		case "week":
			return now.AddDate(0, 0, amount*7*direction).Format(isoDate)
		case "month":
			return now.AddDate(0, amount*direction, 0).Format(isoDate)
		}
	}

	// "last Tuesday" / "next Friday". Never resolves to the anchor itself:
	// a matching weekday still moves a full week in the given direction.
	if m := weekdayRe.FindStringSubmatch(lower); m != nil {
		target := indexOfWeekday(m[2])
		current := int(now.Weekday())
		var offset int
		if m[1] == "last" {
			offset = current - target
			if offset <= 0 {
				offset += 7
			}
			offset = -offset
		} else {
			offset = target - current
			if offset <= 0 {
				offset += 7
			}
		}
		return now.AddDate(0, 0, offset).Format(isoDate)
	}

	// "the 22nd": current month, or previous month if that day hasn't
	// happened yet. Bare day-of-month never projects into the future.
	if m := dayOfMonRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		date := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
		if date.After(now) {
			date = time.Date(now.Year(), now.Month()-1, day, 0, 0, 0, 0, now.Location())
		}
		return date.Format(isoDate)
	}

	// "December 22" / "Dec 22": current year, or last year if in the future.
	if m := monthDayRe.FindStringSubmatch(lower); m != nil {
		month := monthsByName[m[1]]
		day, _ := strconv.Atoi(m[2])
		date := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
		if date.After(now) {
			date = date.AddDate(-1, 0, 0)
		}
		return date.Format(isoDate)
	}

	return expr
}

// Anchor builds the turn's anchor date from the caller-supplied local date
// string, falling back to server time when absent or malformed.
func Anchor(localDate string) time.Time {
	if isoRe.MatchString(localDate) {
		if t, err := time.Parse(isoDate, localDate); err == nil {
			return t
		}
	}
	return midnight(time.Now())
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func indexOfWeekday(name string) int {
	for i, n := range weekdayNames {
		if n == name {
			return i
		}
	}
	panic(fmt.Sprintf("resolve: unknown weekday %q", name))
}
