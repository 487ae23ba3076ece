package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/shoreline-ops/scheduleboard/internal/board"
	"github.com/shoreline-ops/scheduleboard/internal/models"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

// ResourceService exposes the resource snapshot in board render order.
type ResourceService struct {
	repo   resourceRepository
	logger *zap.Logger
}

// NewResourceService constructs the service.
func NewResourceService(repo resourceRepository, logger *zap.Logger) *ResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService{repo: repo, logger: logger}
}

// List returns the filtered flat snapshot.
func (s *ResourceService) List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	resources, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list resources")
	}
	return resources, nil
}

// Grouped returns the snapshot organised the way the board renders it:
// asset-type sections with capability units nested under their parent.
func (s *ResourceService) Grouped(ctx context.Context, filter models.ResourceFilter) ([]board.Group, error) {
	resources, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return board.IndexResources(resources), nil
}

// Get returns a single resource.
func (s *ResourceService) Get(ctx context.Context, id string) (*models.Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "resource not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resource")
	}
	return res, nil
}
