package board

import (
	"time"

	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

// ZoomLevel selects the granularity of the board's time axis.
type ZoomLevel string

const (
	Zoom15Min  ZoomLevel = "15min"
	ZoomHour   ZoomLevel = "hour"
	ZoomDay    ZoomLevel = "day"
	ZoomWeek   ZoomLevel = "week"
	ZoomMonth  ZoomLevel = "month"
	ZoomSeason ZoomLevel = "season"
	ZoomYear   ZoomLevel = "year"
)

// ZoomLevels lists every level in selector order, finest first.
var ZoomLevels = []ZoomLevel{Zoom15Min, ZoomHour, ZoomDay, ZoomWeek, ZoomMonth, ZoomSeason, ZoomYear}

// ParseZoom validates a raw zoom string from the API.
func ParseZoom(raw string) (ZoomLevel, error) {
	z := ZoomLevel(raw)
	if _, ok := ConfigFor(z); !ok {
		return "", appErrors.Clone(appErrors.ErrInvalidZoom, "unknown zoom level: "+raw)
	}
	return z, nil
}

// SlotKind tags how a zoom level generates its slots. Fixed kinds step
// by a constant duration; calendar kinds step by a calendar unit so
// they stay correct across variable month lengths and DST.
type SlotKind int

const (
	SlotFixed SlotKind = iota
	SlotCalendar
)

// CalendarUnit is the stepping unit for SlotCalendar zoom levels.
type CalendarUnit int

const (
	UnitDay CalendarUnit = iota
	UnitWeek
	UnitMonth
)

// ZoomConfig holds the slot-generation and date-arithmetic rules for
// one zoom level.
type ZoomConfig struct {
	Level       ZoomLevel
	Kind        SlotKind
	SlotMinutes int          // fixed kinds only
	Unit        CalendarUnit // calendar kinds only

	rangeFor func(anchor time.Time) (time.Time, time.Time)
}

// RangeFor computes the half-open visible window containing anchor.
func (c ZoomConfig) RangeFor(anchor time.Time) (time.Time, time.Time) {
	return c.rangeFor(anchor)
}

// SlotDuration returns the fixed slot width. Zero for calendar kinds.
func (c ZoomConfig) SlotDuration() time.Duration {
	if c.Kind != SlotFixed {
		return 0
	}
	return time.Duration(c.SlotMinutes) * time.Minute
}

// SlotCount counts the slots tiling [from, to).
func (c ZoomConfig) SlotCount(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	if c.Kind == SlotFixed {
		return int(to.Sub(from) / c.SlotDuration())
	}
	count := 0
	for cur := from; cur.Before(to); cur = stepCalendar(cur, c.Unit) {
		count++
	}
	return count
}

var zoomConfigs = map[ZoomLevel]ZoomConfig{
	Zoom15Min: {
		Level:       Zoom15Min,
		Kind:        SlotFixed,
		SlotMinutes: 15,
		rangeFor:    dayWindow,
	},
	ZoomHour: {
		Level:       ZoomHour,
		Kind:        SlotFixed,
		SlotMinutes: 60,
		rangeFor:    dayWindow,
	},
	ZoomDay: {
		Level:       ZoomDay,
		Kind:        SlotFixed,
		SlotMinutes: 24 * 60,
		rangeFor: func(anchor time.Time) (time.Time, time.Time) {
			from := StartOfDay(anchor)
			return from, from.AddDate(0, 0, 7)
		},
	},
	ZoomWeek: {
		Level:       ZoomWeek,
		Kind:        SlotFixed,
		SlotMinutes: 24 * 60,
		rangeFor: func(anchor time.Time) (time.Time, time.Time) {
			from := StartOfWeek(anchor)
			return from, from.AddDate(0, 0, 7)
		},
	},
	ZoomMonth: {
		Level:    ZoomMonth,
		Kind:     SlotCalendar,
		Unit:     UnitDay,
		rangeFor: func(anchor time.Time) (time.Time, time.Time) {
			from := StartOfMonth(anchor)
			return from, from.AddDate(0, 1, 0)
		},
	},
	ZoomSeason: {
		Level:    ZoomSeason,
		Kind:     SlotCalendar,
		Unit:     UnitWeek,
		rangeFor: func(anchor time.Time) (time.Time, time.Time) {
			from := StartOfMonth(anchor)
			return from, from.AddDate(0, 3, 0)
		},
	},
	ZoomYear: {
		Level:    ZoomYear,
		Kind:     SlotCalendar,
		Unit:     UnitMonth,
		rangeFor: func(anchor time.Time) (time.Time, time.Time) {
			from := time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
			return from, from.AddDate(1, 0, 0)
		},
	},
}

// ConfigFor looks up the static config for a zoom level.
func ConfigFor(zoom ZoomLevel) (ZoomConfig, bool) {
	cfg, ok := zoomConfigs[zoom]
	return cfg, ok
}

func dayWindow(anchor time.Time) (time.Time, time.Time) {
	from := StartOfDay(anchor)
	return from, from.AddDate(0, 0, 1)
}

func stepCalendar(t time.Time, unit CalendarUnit) time.Time {
	switch unit {
	case UnitDay:
		return t.AddDate(0, 0, 1)
	case UnitWeek:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday starting t's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
