package appointment

import (
	"time"

	"github.com/pawpoint/grooming-scheduler/internal/models"
)

// ===============================
// Slot Generator
// ===============================

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching boundaries do not count.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// SlotGrid walks the day window from its open time in fixed stride
// increments, emitting every [t, t+duration) that still ends by the
// close time. Candidate slots may overlap each other when the service
// duration exceeds the stride; filtering against existing bookings
// happens downstream.
func SlotGrid(w DayWindow, duration, stride time.Duration) []Interval {
	if duration <= 0 || stride <= 0 {
		return nil
	}

	var slots []Interval
	for cur := w.Open; !cur.Add(duration).After(w.Close); cur = cur.Add(stride) {
		slots = append(slots, Interval{Start: cur, End: cur.Add(duration)})
	}
	return slots
}

// FilterConflicting drops candidate slots that overlap any busy
// interval.
func FilterConflicting(slots, busy []Interval) []Interval {
	free := make([]Interval, 0, len(slots))

	for _, s := range slots {
		blocked := false
		for _, b := range busy {
			if Overlaps(s.Start, s.End, b.Start, b.End) {
				blocked = true
				break
			}
		}
		if !blocked {
			free = append(free, s)
		}
	}
	return free
}

// BusyIntervals extracts the occupied windows from a day's active
// appointments.
func BusyIntervals(aps []models.Appointment) []Interval {
	busy := make([]Interval, 0, len(aps))
	for _, ap := range aps {
		busy = append(busy, Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return busy
}
