package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

func mondayMorning() []Window {
	return []Window{{Weekday: time.Monday, Start: mustTimeOfDay("08:00"), End: mustTimeOfDay("10:00")}}
}

func TestWindowCovers(t *testing.T) {
	w := mondayMorning()[0]

	cases := []struct {
		name       string
		weekday    time.Weekday
		start, end string
		want       bool
	}{
		{"inside", time.Monday, "08:00", "09:00", true},
		{"whole window", time.Monday, "08:00", "10:00", true},
		{"starts early", time.Monday, "07:59", "09:00", false},
		{"ends late", time.Monday, "09:00", "10:01", false},
		{"other weekday", time.Tuesday, "08:00", "09:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := w.Covers(tc.weekday, mustTimeOfDay(tc.start), mustTimeOfDay(tc.end))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoveredAnyWindow(t *testing.T) {
	windows := append(mondayMorning(), Window{Weekday: time.Monday, Start: mustTimeOfDay("14:00"), End: mustTimeOfDay("18:00")})
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	assert.True(t, Covered(windows, monday, mustTimeOfDay("15:00"), mustTimeOfDay("16:00")))
	assert.False(t, Covered(windows, monday, mustTimeOfDay("09:30"), mustTimeOfDay("14:30")))
	assert.False(t, Covered(nil, monday, mustTimeOfDay("08:00"), mustTimeOfDay("09:00")))
}

func TestCoversIntervalUsesLocation(t *testing.T) {
	douala := time.FixedZone("WAT", 3600)
	// 07:00Z is 08:00 in Douala on Monday 2024-06-03.
	iv := Interval{Start: time.Date(2024, 6, 3, 7, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)}

	assert.True(t, CoversInterval(mondayMorning(), iv, douala))
	assert.False(t, CoversInterval(mondayMorning(), iv, time.UTC))
}

func TestCoversIntervalAcrossMidnight(t *testing.T) {
	late := []Window{{Weekday: time.Monday, Start: mustTimeOfDay("22:00"), End: EndOfDay}}

	toMidnight := Interval{Start: time.Date(2024, 6, 3, 23, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)}
	assert.True(t, CoversInterval(late, toMidnight, time.UTC))

	pastMidnight := Interval{Start: time.Date(2024, 6, 3, 23, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 4, 0, 30, 0, 0, time.UTC)}
	assert.False(t, CoversInterval(late, pastMidnight, time.UTC))
}

func TestParseWindowsSkipsMalformedRules(t *testing.T) {
	rules := []models.AvailabilityRule{
		{Weekday: 1, StartTime: "08:00:00", EndTime: "10:00:00"},
		{Weekday: 7, StartTime: "08:00:00", EndTime: "10:00:00"},
		{Weekday: 2, StartTime: "10:00:00", EndTime: "09:00:00"},
		{Weekday: 3, StartTime: "bad", EndTime: "09:00:00"},
	}

	windows, skipped := ParseWindows(rules)
	require.Len(t, windows, 1)
	assert.Equal(t, 3, skipped)
	assert.Equal(t, time.Monday, windows[0].Weekday)
}
