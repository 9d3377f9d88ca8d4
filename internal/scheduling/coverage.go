package scheduling

import (
	"fmt"
	"time"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

// Window is a parsed availability rule.
type Window struct {
	Weekday time.Weekday
	Start   TimeOfDay
	End     TimeOfDay
}

// WindowFromRule parses the stored representation of a rule.
func WindowFromRule(rule models.AvailabilityRule) (Window, error) {
	if rule.Weekday < 0 || rule.Weekday > 6 {
		return Window{}, fmt.Errorf("invalid weekday %d", rule.Weekday)
	}
	start, err := ParseTimeOfDay(rule.StartTime)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseTimeOfDay(rule.EndTime)
	if err != nil {
		return Window{}, err
	}
	if start >= end {
		return Window{}, fmt.Errorf("window start %s is not before end %s", start, end)
	}
	return Window{Weekday: time.Weekday(rule.Weekday), Start: start, End: end}, nil
}

// Covers reports whether the window contains [start, end) on weekday.
func (w Window) Covers(weekday time.Weekday, start, end TimeOfDay) bool {
	return w.Weekday == weekday && w.Start <= start && w.End >= end
}

// Covered reports whether at least one window covers [start, end) on the
// calendar date of date.
func Covered(windows []Window, date time.Time, start, end TimeOfDay) bool {
	weekday := WeekdayOf(date)
	for _, w := range windows {
		if w.Covers(weekday, start, end) {
			return true
		}
	}
	return false
}

// CoversInterval converts the interval into loc and checks it against the
// windows. An interval spanning more than one calendar day is never
// covered, except one ending exactly at the next midnight.
func CoversInterval(windows []Window, interval Interval, loc *time.Location) bool {
	local := interval.In(loc)
	start := TimeOfDayOf(local.Start)
	end := TimeOfDayOf(local.End)

	if !sameDate(local.Start, local.End) {
		next := local.Start.AddDate(0, 0, 1)
		if !sameDate(next, local.End) || end != 0 {
			return false
		}
		end = EndOfDay
	}
	return Covered(windows, local.Start, start, end)
}

// ParseWindows parses rules and skips malformed rows, returning how many
// were skipped.
func ParseWindows(rules []models.AvailabilityRule) ([]Window, int) {
	windows := make([]Window, 0, len(rules))
	skipped := 0
	for _, rule := range rules {
		w, err := WindowFromRule(rule)
		if err != nil {
			skipped++
			continue
		}
		windows = append(windows, w)
	}
	return windows, skipped
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
