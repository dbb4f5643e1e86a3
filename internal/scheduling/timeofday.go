package scheduling

import (
	"fmt"
	"time"
)

// TimeLayout is the wire format for times of day (24-hour, no seconds).
const TimeLayout = "15:04"

// storedTimeLayout is how Postgres renders TIME columns back to text.
const storedTimeLayout = "15:04:05"

// TimeOfDay is a time of day expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string. An "HH:MM:SS" string is accepted
// too, because time columns scan back from the database with seconds attached;
// the seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		t, err = time.Parse(storedTimeLayout, s)
	}
	if err != nil {
		return 0, err
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t/60, t%60)
}

// Interval is a half-open [Start, End) time-of-day range.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether two half-open intervals intersect. Touching
// intervals (one ends exactly where the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// ParseInterval parses a pair of "HH:MM" strings into an interval.
func ParseInterval(startTime, endTime string) (Interval, error) {
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	end, err := ParseTimeOfDay(endTime)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid end time %q: %w", endTime, err)
	}
	return Interval{Start: start, End: end}, nil
}
