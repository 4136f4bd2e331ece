package appointment

import (
	"time"

	"github.com/pawpoint/grooming-scheduler/internal/models"
)

// ===============================
// Calendar Policy
// ===============================

// DayWindow is the open/close bounds of a single business day,
// anchored to concrete instants on that date.
type DayWindow struct {
	Open  time.Time
	Close time.Time
}

func (w DayWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.Open) && !end.After(w.Close)
}

// ISOWeekday maps time.Weekday (Sunday=0) onto the stored 1..7
// convention (Monday=1 .. Sunday=7).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ResolveDayWindow decides whether a date is open for business and, if
// so, returns its open/close bounds. A holiday closes the day outright;
// otherwise the weekday row decides. A missing row, is_open=false, or
// an unparseable/inverted time pair all read as closed.
func ResolveDayWindow(date time.Time, hours *models.BusinessHours, onHoliday bool) (DayWindow, bool) {
	if onHoliday {
		return DayWindow{}, false
	}
	if hours == nil || !hours.IsOpen {
		return DayWindow{}, false
	}

	open, err := atClock(date, hours.OpenTime)
	if err != nil {
		return DayWindow{}, false
	}
	close, err := atClock(date, hours.CloseTime)
	if err != nil {
		return DayWindow{}, false
	}
	if !open.Before(close) {
		return DayWindow{}, false
	}

	return DayWindow{Open: open, Close: close}, true
}

// atClock anchors an "15:04" wall-clock string onto the given date.
func atClock(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}
