package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoreline-ops/scheduleboard/internal/board"
	"github.com/shoreline-ops/scheduleboard/internal/models"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

type fakeResourceSrv struct {
	resources  []models.Resource
	groups     []board.Group
	resource   *models.Resource
	err        error
	lastFilter models.ResourceFilter
}

func (f *fakeResourceSrv) List(_ context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	f.lastFilter = filter
	return f.resources, f.err
}

func (f *fakeResourceSrv) Grouped(_ context.Context, filter models.ResourceFilter) ([]board.Group, error) {
	f.lastFilter = filter
	return f.groups, f.err
}

func (f *fakeResourceSrv) Get(_ context.Context, _ string) (*models.Resource, error) {
	return f.resource, f.err
}

func TestResourceHandlerListParsesFilter(t *testing.T) {
	srv := &fakeResourceSrv{resources: []models.Resource{{ID: "boat-1"}}}
	h := NewResourceHandler(srv)

	c, rec := testContext(t, http.MethodGet, "/resources?q=boat&types=watercraft&includeInactive=true", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "boat", srv.lastFilter.Search)
	assert.Equal(t, []models.AssetType{models.AssetWatercraft}, srv.lastFilter.AssetTypes)
	assert.True(t, srv.lastFilter.IncludeInactive)
}

func TestResourceHandlerListGrouped(t *testing.T) {
	srv := &fakeResourceSrv{groups: []board.Group{{AssetType: models.AssetVehicle}}}
	h := NewResourceHandler(srv)

	c, rec := testContext(t, http.MethodGet, "/resources?grouped=true", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []board.Group `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, models.AssetVehicle, envelope.Data[0].AssetType)
}

func TestResourceHandlerGetNotFound(t *testing.T) {
	srv := &fakeResourceSrv{err: appErrors.Clone(appErrors.ErrNotFound, "resource not found")}
	h := NewResourceHandler(srv)

	c, rec := testContext(t, http.MethodGet, "/resources/ghost", "")
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "ghost"})
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
