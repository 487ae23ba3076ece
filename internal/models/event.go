package models

import "time"

// EventType classifies a schedule entry. Values arrive from the data
// source and are open-ended; these are the ones with styling mappings.
const (
	EventBooked      = "BOOKED"
	EventHold        = "HOLD"
	EventMaintenance = "MAINTENANCE"
	EventBuffer      = "BUFFER"
	EventReservation = "RESERVATION"
)

// ScheduleEvent occupies a span of time on exactly one resource row.
// StartDate/EndDate form a half-open interval.
type ScheduleEvent struct {
	ID         string    `db:"id" json:"id"`
	ResourceID string    `db:"resource_id" json:"resource_id"`
	EventType  string    `db:"event_type" json:"event_type"`
	Status     string    `db:"status" json:"status"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
	Title      string    `db:"title" json:"title"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Valid reports whether the interval is well formed. Malformed events
// are skipped during snapshot assembly instead of failing the render.
func (e ScheduleEvent) Valid() bool {
	return e.EndDate.After(e.StartDate)
}

// EventFilter selects events overlapping a half-open window.
type EventFilter struct {
	From        time.Time
	To          time.Time
	ResourceIDs []string
}
