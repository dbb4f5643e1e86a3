package scheduling

import (
	"fmt"
	"sort"
	"time"

	"healthflow-backend/internal/domain/entity"
)

// Slot is one fixed-duration candidate appointment interval, derived from a
// doctor's recurring availability and never persisted.
type Slot struct {
	Start     TimeOfDay
	End       TimeOfDay
	Available bool
}

// ComputeSlots tiles the doctor's availability windows for the weekday of
// date with contiguous slots of slotMinutes length and marks each slot
// unavailable when it overlaps an active appointment.
//
// All windows configured for the weekday are honoured, ordered by start time.
// A slot is only emitted when it fits entirely inside its window, so the last
// partial remainder of a window is never offered. Returns an empty list when
// the doctor has no window on that weekday or slotMinutes is not positive.
func ComputeSlots(date time.Time, windows []entity.WeeklyAvailability, slotMinutes int, booked []entity.Appointment) ([]Slot, error) {
	if slotMinutes <= 0 {
		return []Slot{}, nil
	}

	busy, err := busyIntervals(booked)
	if err != nil {
		return nil, err
	}

	day := date.Weekday()
	var dayWindows []Interval
	for _, w := range windows {
		if w.DayOfWeek != day {
			continue
		}
		window, err := ParseInterval(w.StartTime, w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("availability %s: %w", w.ID, err)
		}
		if window.Start >= window.End {
			continue
		}
		dayWindows = append(dayWindows, window)
	}
	sort.Slice(dayWindows, func(i, j int) bool {
		return dayWindows[i].Start < dayWindows[j].Start
	})

	duration := TimeOfDay(slotMinutes)
	slots := []Slot{}
	for _, window := range dayWindows {
		for start := window.Start; start+duration <= window.End; start += duration {
			slot := Interval{Start: start, End: start + duration}
			slots = append(slots, Slot{
				Start:     slot.Start,
				End:       slot.End,
				Available: !intersectsAny(slot, busy),
			})
		}
	}

	return slots, nil
}

func busyIntervals(booked []entity.Appointment) ([]Interval, error) {
	intervals := make([]Interval, 0, len(booked))
	for _, a := range booked {
		if !a.IsActive() {
			continue
		}
		interval, err := ParseInterval(a.StartTime, a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %s: %w", a.ID, err)
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

func intersectsAny(slot Interval, busy []Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
