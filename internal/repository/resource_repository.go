package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/shoreline-ops/scheduleboard/internal/models"
)

// ResourceRepository provides the resource snapshot the board renders.
type ResourceRepository struct {
	db *sqlx.DB
}

// NewResourceRepository creates a new resource repository.
func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

const resourceColumns = "id, name, asset_type, parent_asset_id, capability_status, under_maintenance, inactive, thumbnail_url, created_at, updated_at"

// List returns the filtered resource snapshot in declaration order:
// parents first by creation time, each parent's capability units right
// behind it so the board indexer sees children after their parent.
func (r *ResourceRepository) List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	base := "FROM resources WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if len(filter.AssetTypes) > 0 {
		placeholders := make([]string, len(filter.AssetTypes))
		for i, t := range filter.AssetTypes {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, string(t))
		}
		conditions = append(conditions, "asset_type IN ("+strings.Join(placeholders, ", ")+")")
	}
	if !filter.IncludeInactive {
		conditions = append(conditions, "inactive = FALSE")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY COALESCE(parent_asset_id, id), parent_asset_id NULLS FIRST, created_at", resourceColumns, base)
	var resources []models.Resource
	if err := r.db.SelectContext(ctx, &resources, query, args...); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	return resources, nil
}

// GetByID fetches one resource.
func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	query := fmt.Sprintf("SELECT %s FROM resources WHERE id = $1", resourceColumns)
	var res models.Resource
	if err := r.db.GetContext(ctx, &res, query, id); err != nil {
		return nil, err
	}
	return &res, nil
}
