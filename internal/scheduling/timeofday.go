package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed in seconds since midnight.
// The value 24:00 (86400) is allowed as an end bound.
type TimeOfDay int

const (
	secondsPerDay = 24 * 60 * 60

	// EndOfDay is midnight seen as the closing bound of a day.
	EndOfDay TimeOfDay = secondsPerDay
)

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}

	limits := []int{24, 59, 59}
	values := [3]int{}
	for i, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("invalid time of day %q", raw)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("invalid time of day %q", raw)
		}
		values[i] = n
	}

	t := TimeOfDay(values[0]*3600 + values[1]*60 + values[2])
	if t > EndOfDay {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}
	return t, nil
}

// TimeOfDayOf returns the wall-clock time of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// String renders "HH:MM:SS".
func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// WeekdayOf returns the weekday of the calendar date of d. The date is
// re-anchored at midday UTC so that no offset can shift it to a
// neighbouring day.
func WeekdayOf(d time.Time) time.Weekday {
	y, m, day := d.Date()
	return time.Date(y, m, day, 12, 0, 0, 0, time.UTC).Weekday()
}
