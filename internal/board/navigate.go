package board

import (
	"time"

	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

// Advance moves the anchor one zoom-appropriate step in the given
// direction (+1 forward, -1 back). Fine zooms page a day at a time,
// day/week page a week, and the calendar zooms page by month, quarter
// and year with end-of-month clamping so stepping from Jan 31 lands on
// the last day of February instead of spilling into March.
func Advance(anchor time.Time, zoom ZoomLevel, direction int) (time.Time, error) {
	if _, ok := ConfigFor(zoom); !ok {
		return time.Time{}, appErrors.Clone(appErrors.ErrInvalidZoom, "unknown zoom level: "+string(zoom))
	}
	if direction >= 0 {
		direction = 1
	} else {
		direction = -1
	}

	switch zoom {
	case Zoom15Min, ZoomHour:
		return anchor.AddDate(0, 0, direction), nil
	case ZoomDay, ZoomWeek:
		return anchor.AddDate(0, 0, 7*direction), nil
	case ZoomMonth:
		return addMonthsClamped(anchor, direction), nil
	case ZoomSeason:
		return addMonthsClamped(anchor, 3*direction), nil
	default: // ZoomYear
		return addMonthsClamped(anchor, 12*direction), nil
	}
}

// Today resets the anchor to midnight of the current date.
func Today(now time.Time) time.Time {
	return StartOfDay(now)
}

// SnapToQuantum floors an instant to the nearest quantum boundary
// counted from midnight of its own day. The click-resolution grid is
// deliberately decoupled from the zoom's slot width: clicking anywhere
// inside a 1-hour slot still yields a 15-minute-aligned candidate
// start for the booking collaborator. Idempotent.
func SnapToQuantum(t time.Time, quantum time.Duration) time.Time {
	if quantum <= 0 {
		quantum = 15 * time.Minute
	}
	day := StartOfDay(t)
	offset := t.Sub(day)
	return day.Add(offset - offset%quantum)
}

// addMonthsClamped shifts by whole calendar months, clamping the day
// of month to the target month's length. time.AddDate would normalize
// Jan 31 + 1 month into March; the board must never skip a month.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month := t.Year(), int(t.Month())-1+months
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	target := time.Month(month + 1)

	day := t.Day()
	if last := daysIn(year, target, t.Location()); day > last {
		day = last
	}
	return time.Date(year, target, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return first.AddDate(0, 1, -1).Day()
}
