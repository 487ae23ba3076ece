package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shoreline-ops/scheduleboard/internal/board"
	"github.com/shoreline-ops/scheduleboard/internal/models"
	"github.com/shoreline-ops/scheduleboard/pkg/config"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

type resourceRepository interface {
	List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
}

type eventReader interface {
	ListRange(ctx context.Context, filter models.EventFilter) ([]models.ScheduleEvent, error)
}

type windowCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type cacheObserver interface {
	ObserveCache(hit bool)
}

// SlotClickFunc receives the snapped candidate start for a new
// booking. Booking creation itself belongs to an external
// collaborator; the board only reports the click.
type SlotClickFunc func(resourceID string, snappedStart time.Time)

// BoardService hosts the board engine. The engine expects to be driven
// from a single event loop, so the service serializes every
// state-changing call on one mutex and plays the role of the data
// collaborator: whenever the controller reports a range change the
// service fetches the matching event window (through the cache) on the
// next snapshot.
type BoardService struct {
	mu         sync.Mutex
	controller *board.Controller

	resources resourceRepository
	events    eventReader
	cache     windowCache
	cacheTTL  time.Duration

	onSlotClick SlotClickFunc
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     cacheObserver
}

// SetMetrics attaches an optional cache hit/miss observer.
func (s *BoardService) SetMetrics(metrics cacheObserver) {
	s.metrics = metrics
}

// NewBoardService wires the engine to its collaborators. The initial
// window is today at day zoom.
func NewBoardService(
	cfg config.BoardConfig,
	resources resourceRepository,
	events eventReader,
	cache windowCache,
	onSlotClick SlotClickFunc,
	validate *validator.Validate,
	logger *zap.Logger,
) (*BoardService, error) {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := &BoardService{
		resources:   resources,
		events:      events,
		cache:       cache,
		cacheTTL:    cfg.CacheTTL,
		onSlotClick: onSlotClick,
		validator:   validate,
		logger:      logger,
	}

	controller, err := board.NewController(board.ControllerConfig{
		Zoom:            board.ZoomDay,
		SnapQuantum:     cfg.SnapQuantum,
		LabelMinPercent: cfg.LabelMinPercent,
		EmptyAction:     cfg.EmptyStateAction,
		OnRangeChange: func(from, to time.Time, zoom board.ZoomLevel) {
			logger.Info("board_range_change",
				zap.Time("from", from),
				zap.Time("to", to),
				zap.String("zoom", string(zoom)),
			)
		},
	})
	if err != nil {
		return nil, err
	}
	svc.controller = controller
	return svc, nil
}

// SnapshotRequest selects the window and resource filters for one
// render pass.
type SnapshotRequest struct {
	Anchor          *time.Time
	Zoom            string
	Search          string
	AssetTypes      []models.AssetType
	IncludeInactive bool
}

// Snapshot renders the board for the requested window.
func (s *BoardService) Snapshot(ctx context.Context, req SnapshotRequest) (board.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Zoom != "" {
		zoom, err := board.ParseZoom(req.Zoom)
		if err != nil {
			return board.Snapshot{}, err
		}
		if err := s.controller.SetZoom(zoom); err != nil {
			return board.Snapshot{}, err
		}
	}
	if req.Anchor != nil {
		s.controller.SetAnchor(*req.Anchor)
	}

	return s.buildLocked(ctx, req)
}

// Navigate pages the board one step and re-renders.
func (s *BoardService) Navigate(ctx context.Context, direction int, req SnapshotRequest) (board.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.controller.Navigate(direction); err != nil {
		return board.Snapshot{}, err
	}
	return s.buildLocked(ctx, req)
}

// Today resets the anchor to the current date and re-renders.
func (s *BoardService) Today(ctx context.Context, req SnapshotRequest) (board.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.controller.Today()
	return s.buildLocked(ctx, req)
}

// SlotClickRequest is a raw click on an empty grid cell.
type SlotClickRequest struct {
	ResourceID string    `json:"resource_id" validate:"required"`
	ClickedAt  time.Time `json:"clicked_at" validate:"required"`
}

// SlotClickResult is the snapped, bookable candidate start.
type SlotClickResult struct {
	ResourceID   string    `json:"resource_id"`
	SnappedStart time.Time `json:"snapped_start"`
}

// SlotClick validates the click target and translates the click
// instant onto the booking grid.
func (s *BoardService) SlotClick(ctx context.Context, req SlotClickRequest) (*SlotClickResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	if _, err := s.resources.GetByID(ctx, req.ResourceID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "resource not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resource")
	}

	s.mu.Lock()
	snapped := s.controller.SlotClick(req.ClickedAt)
	s.mu.Unlock()

	if s.onSlotClick != nil {
		s.onSlotClick(req.ResourceID, snapped)
	}
	return &SlotClickResult{ResourceID: req.ResourceID, SnappedStart: snapped}, nil
}

// Window exposes the current visible window without re-rendering.
func (s *BoardService) Window() board.VisibleWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Window()
}

func (s *BoardService) buildLocked(ctx context.Context, req SnapshotRequest) (board.Snapshot, error) {
	window := s.controller.Window()

	resources, err := s.resources.List(ctx, models.ResourceFilter{
		Search:          req.Search,
		AssetTypes:      req.AssetTypes,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		return board.Snapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list resources")
	}

	events, err := s.fetchEvents(ctx, window)
	if err != nil {
		return board.Snapshot{}, err
	}

	return s.controller.BuildSnapshot(resources, events), nil
}

// fetchEvents loads the event window, serving repeat renders of the
// same window from the cache.
func (s *BoardService) fetchEvents(ctx context.Context, window board.VisibleWindow) ([]models.ScheduleEvent, error) {
	key := eventWindowKey(window.From, window.To)

	var cached []models.ScheduleEvent
	if s.cache != nil {
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.observeCache(true)
			return cached, nil
		} else if err != appErrors.ErrCacheMiss {
			s.logger.Warn("board_cache_read_failed", zap.String("key", key), zap.Error(err))
		}
		s.observeCache(false)
	}

	events, err := s.events.ListRange(ctx, models.EventFilter{From: window.From, To: window.To})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, events, s.cacheTTL); err != nil {
			s.logger.Warn("board_cache_write_failed", zap.String("key", key), zap.Error(err))
		}
	}
	return events, nil
}

func (s *BoardService) observeCache(hit bool) {
	if s.metrics != nil {
		s.metrics.ObserveCache(hit)
	}
}

// EventWindowKeyPrefix scopes every cached event window; event writes
// invalidate by this prefix.
const EventWindowKeyPrefix = "board:events:"

func eventWindowKey(from, to time.Time) string {
	return fmt.Sprintf("%s%d:%d", EventWindowKeyPrefix, from.Unix(), to.Unix())
}
