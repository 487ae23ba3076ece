package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shoreline-ops/scheduleboard/internal/models"
)

// EventRepository stores the schedule events rendered on the board.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = "id, resource_id, event_type, status, start_date, end_date, title, created_at, updated_at"

// ListRange returns events overlapping the half-open [from, to)
// window, optionally restricted to a resource set. Overlap uses the
// same semantics as the projector: end > from AND start < to.
func (r *EventRepository) ListRange(ctx context.Context, filter models.EventFilter) ([]models.ScheduleEvent, error) {
	base := "FROM schedule_events WHERE end_date > $1 AND start_date < $2"
	args := []interface{}{filter.From, filter.To}

	if len(filter.ResourceIDs) > 0 {
		placeholders := make([]string, len(filter.ResourceIDs))
		for i, id := range filter.ResourceIDs {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, id)
		}
		base += " AND resource_id IN (" + strings.Join(placeholders, ", ") + ")"
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY start_date, id", eventColumns, base)
	var events []models.ScheduleEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

// GetByID fetches one event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.ScheduleEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_events WHERE id = $1", eventColumns)
	var ev models.ScheduleEvent
	if err := r.db.GetContext(ctx, &ev, query, id); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Create inserts an event, assigning an id when the caller left it
// empty.
func (r *EventRepository) Create(ctx context.Context, ev *models.ScheduleEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	query := `INSERT INTO schedule_events (id, resource_id, event_type, status, start_date, end_date, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query,
		ev.ID, ev.ResourceID, ev.EventType, ev.Status, ev.StartDate, ev.EndDate, ev.Title, ev.CreatedAt, ev.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update rewrites an event's mutable fields.
func (r *EventRepository) Update(ctx context.Context, ev *models.ScheduleEvent) error {
	ev.UpdatedAt = time.Now().UTC()

	query := `UPDATE schedule_events
		SET resource_id = $2, event_type = $3, status = $4, start_date = $5, end_date = $6, title = $7, updated_at = $8
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		ev.ID, ev.ResourceID, ev.EventType, ev.Status, ev.StartDate, ev.EndDate, ev.Title, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update event %s: no rows", ev.ID)
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM schedule_events WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
