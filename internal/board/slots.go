package board

import (
	"time"

	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

// SlotsFor generates the ordered slot-start instants covering the
// visible window for anchor at the given zoom. The result is strictly
// increasing and tiles [from, to) with no gaps: each slot ends where
// the next begins, and the final slot ends at to.
func SlotsFor(anchor time.Time, zoom ZoomLevel) ([]time.Time, error) {
	cfg, ok := ConfigFor(zoom)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidZoom, "unknown zoom level: "+string(zoom))
	}

	from, to := cfg.RangeFor(anchor)
	slots := make([]time.Time, 0, cfg.SlotCount(from, to))

	switch cfg.Kind {
	case SlotFixed:
		step := cfg.SlotDuration()
		for cur := from; cur.Before(to); cur = cur.Add(step) {
			slots = append(slots, cur)
		}
	case SlotCalendar:
		for cur := from; cur.Before(to); cur = stepCalendar(cur, cfg.Unit) {
			slots = append(slots, cur)
		}
	}

	return slots, nil
}

// SlotEnd resolves the exclusive end of slot i: the next slot's start,
// or the window's upper bound for the last slot. A trailing calendar
// slot may therefore be shorter than its siblings.
func SlotEnd(slots []time.Time, i int, to time.Time) time.Time {
	if i+1 < len(slots) {
		return slots[i+1]
	}
	return to
}
