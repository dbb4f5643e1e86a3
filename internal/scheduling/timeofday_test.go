package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("parses and formats round trip", func(t *testing.T) {
		for _, s := range []string{"00:00", "08:05", "12:30", "23:59"} {
			parsed, err := ParseTimeOfDay(s)
			assert.NoError(t, err)
			assert.Equal(t, s, parsed.String())
		}
	})

	t.Run("converts to minutes since midnight", func(t *testing.T) {
		parsed, err := ParseTimeOfDay("09:30")
		assert.NoError(t, err)
		assert.Equal(t, TimeOfDay(9*60+30), parsed)
	})

	t.Run("accepts times scanned back from the database with seconds", func(t *testing.T) {
		for input, want := range map[string]string{
			"08:00:00": "08:00",
			"09:30:00": "09:30",
			"23:59:59": "23:59",
		} {
			parsed, err := ParseTimeOfDay(input)
			assert.NoError(t, err, "input %q", input)
			assert.Equal(t, want, parsed.String())
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "9am", "25:00", "12:61", "12.30"} {
			_, err := ParseTimeOfDay(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestIntervalOverlaps(t *testing.T) {
	mustInterval := func(start, end string) Interval {
		interval, err := ParseInterval(start, end)
		assert.NoError(t, err)
		return interval
	}

	t.Run("partial overlap on either side", func(t *testing.T) {
		a := mustInterval("09:00", "10:00")
		b := mustInterval("09:30", "10:30")
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("containment overlaps", func(t *testing.T) {
		outer := mustInterval("08:00", "12:00")
		inner := mustInterval("09:00", "09:30")
		assert.True(t, outer.Overlaps(inner))
		assert.True(t, inner.Overlaps(outer))
	})

	t.Run("identical intervals overlap", func(t *testing.T) {
		a := mustInterval("09:00", "10:00")
		assert.True(t, a.Overlaps(a))
	})

	t.Run("touching intervals do not overlap", func(t *testing.T) {
		a := mustInterval("09:00", "10:00")
		b := mustInterval("10:00", "11:00")
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("interval exactly filling a gap overlaps neither neighbour", func(t *testing.T) {
		before := mustInterval("09:00", "09:30")
		after := mustInterval("10:00", "10:30")
		gap := mustInterval("09:30", "10:00")
		assert.False(t, gap.Overlaps(before))
		assert.False(t, gap.Overlaps(after))
	})

	t.Run("disjoint intervals do not overlap", func(t *testing.T) {
		a := mustInterval("08:00", "09:00")
		b := mustInterval("14:00", "15:00")
		assert.False(t, a.Overlaps(b))
	})
}

func TestParseInterval(t *testing.T) {
	t.Run("reports which bound is malformed", func(t *testing.T) {
		_, err := ParseInterval("bad", "10:00")
		assert.ErrorContains(t, err, "invalid start time")

		_, err = ParseInterval("09:00", "bad")
		assert.ErrorContains(t, err, "invalid end time")
	})
}
