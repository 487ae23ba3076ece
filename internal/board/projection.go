package board

import (
	"strings"
	"time"
)

// Projection is the visible portion of an event within one slot,
// expressed as percentages of the slot's width.
type Projection struct {
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// Project clips an event's half-open [start, end) interval against one
// slot's [slotStart, slotEnd) and returns its position within the
// slot. The second return is false when the event does not overlap the
// slot at all. For an event spanning several consecutive slots the
// per-slot projections tile seamlessly: converted back to absolute
// time they reconstruct the clipped interval exactly.
func Project(start, end, slotStart, slotEnd time.Time) (Projection, bool) {
	if !end.After(slotStart) || !slotStart.Before(slotEnd) || !start.Before(slotEnd) {
		return Projection{}, false
	}

	visibleStart := start
	if visibleStart.Before(slotStart) {
		visibleStart = slotStart
	}
	visibleEnd := end
	if visibleEnd.After(slotEnd) {
		visibleEnd = slotEnd
	}

	slotDur := slotEnd.Sub(slotStart)
	return Projection{
		LeftPercent:  float64(visibleStart.Sub(slotStart)) / float64(slotDur) * 100,
		WidthPercent: float64(visibleEnd.Sub(visibleStart)) / float64(slotDur) * 100,
	}, true
}

// DefaultCategory is the neutral styling bucket for events whose type
// and status both lack a mapping.
const DefaultCategory = "default"

// categoryByType maps known event types to styling categories.
var categoryByType = map[string]string{
	"BOOKED":      "booked",
	"HOLD":        "hold",
	"MAINTENANCE": "maintenance",
	"BUFFER":      "buffer",
	"RESERVATION": "reservation",
}

// categoryByStatus is the fallback when the event type has no mapping.
// Statuses are free text from the data source.
var categoryByStatus = map[string]string{
	"CONFIRMED": "booked",
	"PENDING":   "hold",
	"BLOCKED":   "maintenance",
	"CANCELLED": "cancelled",
}

// ResolveCategory picks the visual category for an event: event type
// first, then status, then the neutral default. The chain order
// matters because both inputs are open-ended strings.
func ResolveCategory(eventType, status string) string {
	if cat, ok := categoryByType[strings.ToUpper(strings.TrimSpace(eventType))]; ok {
		return cat
	}
	if cat, ok := categoryByStatus[strings.ToUpper(strings.TrimSpace(status))]; ok {
		return cat
	}
	return DefaultCategory
}
