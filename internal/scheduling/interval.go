package scheduling

import (
	"strings"
	"time"

	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

// Interval is the half-open span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval validates that end is strictly after start.
func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, appErrors.Clone(appErrors.ErrInvalidInterval, "start and end are required")
	}
	if !end.After(start) {
		return Interval{}, appErrors.Clone(appErrors.ErrInvalidInterval, "end must be after start")
	}
	return Interval{Start: start, End: end}, nil
}

// ParseInterval parses RFC3339 bounds and validates them like NewInterval.
// Missing or unparseable bounds are interval errors, not payload errors.
func ParseInterval(start, end string) (Interval, error) {
	from, err := parseBound(start, "starts_at")
	if err != nil {
		return Interval{}, err
	}
	to, err := parseBound(end, "ends_at")
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(from, to)
}

func parseBound(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrInvalidInterval, field+" is required")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrInvalidInterval.Code, appErrors.ErrInvalidInterval.Status, field+" must be an RFC3339 timestamp")
	}
	return t, nil
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether both intervals share an instant. Touching
// bounds do not count.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// In converts both bounds to loc.
func (i Interval) In(loc *time.Location) Interval {
	if loc == nil {
		loc = time.UTC
	}
	return Interval{Start: i.Start.In(loc), End: i.End.In(loc)}
}
