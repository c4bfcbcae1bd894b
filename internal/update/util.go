package update

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verdantapp/sprout/internal/engine"
)

// draftDeadlineDays spaces assistant-drafted and unscheduled tasks one
// week out so they land in the weekly horizon rather than today's.
const draftDeadlineDays = 7

// dueHour anchors shorthand dates at early evening instead of midnight
// so "due:today" is not instantly overdue in the morning.
const dueHour = 18

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseDueShorthand resolves "today", "tomorrow", a weekday name (next
// occurrence, never today) or a YYYY-MM-DD date.
func parseDueShorthand(input string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "today":
		return atDueHour(now), nil
	case "tomorrow":
		return atDueHour(now.AddDate(0, 0, 1)), nil
	}
	if wd, ok := weekdayNames[s]; ok {
		days := int(wd-now.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		return atDueHour(now.AddDate(0, 0, days)), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: cannot parse due date %q", engine.ErrInvalidInput, input)
	}
	return atDueHour(parsed), nil
}

func atDueHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), dueHour, 0, 0, 0, t.Location())
}

func defaultDraftDeadline(now time.Time) time.Time {
	return atDueHour(now.AddDate(0, 0, draftDeadlineDays))
}

// parseEstimate accepts plain minutes plus "m" and "h" suffixes:
// "90", "90m", "2h".
func parseEstimate(input string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	multiplier := 1
	switch {
	case strings.HasSuffix(s, "h"):
		multiplier = 60
		s = strings.TrimSuffix(s, "h")
	case strings.HasSuffix(s, "m"):
		s = strings.TrimSuffix(s, "m")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: cannot parse estimate %q", engine.ErrInvalidInput, input)
	}
	return n * multiplier, nil
}

func parseListPosition(input string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	return n, true
}

func formatDeadline(t time.Time) string {
	return t.Format("Mon Jan 2 15:04")
}
