package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shoreline-ops/scheduleboard/internal/models"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

type eventRepository interface {
	ListRange(ctx context.Context, filter models.EventFilter) ([]models.ScheduleEvent, error)
	GetByID(ctx context.Context, id string) (*models.ScheduleEvent, error)
	Create(ctx context.Context, ev *models.ScheduleEvent) error
	Update(ctx context.Context, ev *models.ScheduleEvent) error
	Delete(ctx context.Context, id string) error
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// EventService maintains the schedule-event snapshot store. It keeps
// the board display-only: writes enforce interval sanity but never
// check for double bookings, which belong to the booking workflow.
type EventService struct {
	repo      eventRepository
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// EventListRequest selects events overlapping a half-open window.
type EventListRequest struct {
	From        time.Time `validate:"required"`
	To          time.Time `validate:"required"`
	ResourceIDs []string
}

// CreateEventRequest describes the create payload.
type CreateEventRequest struct {
	ResourceID string    `json:"resource_id" validate:"required"`
	EventType  string    `json:"event_type" validate:"required"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	Title      string    `json:"title" validate:"required"`
}

// UpdateEventRequest describes the update payload.
type UpdateEventRequest struct {
	ResourceID string    `json:"resource_id" validate:"required"`
	EventType  string    `json:"event_type" validate:"required"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	Title      string    `json:"title" validate:"required"`
}

// List returns events overlapping the window.
func (s *EventService) List(ctx context.Context, req EventListRequest) ([]models.ScheduleEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid window")
	}
	if !req.To.After(req.From) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to must be after from")
	}

	events, err := s.repo.ListRange(ctx, models.EventFilter{From: req.From, To: req.To, ResourceIDs: req.ResourceIDs})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// Create registers a new event and drops stale cached windows.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.ScheduleEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be after start_date")
	}

	ev := &models.ScheduleEvent{
		ResourceID: req.ResourceID,
		EventType:  req.EventType,
		Status:     req.Status,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Title:      req.Title,
	}
	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.invalidateWindows(ctx)
	return ev, nil
}

// Update modifies an event.
func (s *EventService) Update(ctx context.Context, id string, req UpdateEventRequest) (*models.ScheduleEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be after start_date")
	}

	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}

	ev.ResourceID = req.ResourceID
	ev.EventType = req.EventType
	ev.Status = req.Status
	ev.StartDate = req.StartDate
	ev.EndDate = req.EndDate
	ev.Title = req.Title
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	s.invalidateWindows(ctx)
	return ev, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	s.invalidateWindows(ctx)
	return nil
}

func (s *EventService) invalidateWindows(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, EventWindowKeyPrefix+"*"); err != nil {
		s.logger.Warn("board_cache_invalidate_failed", zap.Error(err))
	}
}
