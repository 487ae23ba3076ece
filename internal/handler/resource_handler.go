package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shoreline-ops/scheduleboard/internal/board"
	"github.com/shoreline-ops/scheduleboard/internal/models"
	"github.com/shoreline-ops/scheduleboard/pkg/response"
)

type resourceService interface {
	List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error)
	Grouped(ctx context.Context, filter models.ResourceFilter) ([]board.Group, error)
	Get(ctx context.Context, id string) (*models.Resource, error)
}

// ResourceHandler wires the resource service to HTTP endpoints.
type ResourceHandler struct {
	service resourceService
}

// NewResourceHandler constructs the handler.
func NewResourceHandler(service resourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// List godoc
// @Summary List schedulable resources
// @Tags Resources
// @Produce json
// @Param q query string false "Search term"
// @Param types query string false "Comma-separated asset type filter"
// @Param includeInactive query bool false "Include inactive resources"
// @Param grouped query bool false "Return asset-type sections in board render order"
// @Success 200 {object} response.Envelope
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	filter := models.ResourceFilter{
		Search:          strings.TrimSpace(c.Query("q")),
		IncludeInactive: c.Query("includeInactive") == "true",
	}
	if raw := strings.TrimSpace(c.Query("types")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				filter.AssetTypes = append(filter.AssetTypes, models.AssetType(strings.ToUpper(part)))
			}
		}
	}

	if c.Query("grouped") == "true" {
		groups, err := h.service.Grouped(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, groups, nil)
		return
	}

	resources, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resources, nil)
}

// Get godoc
// @Summary Fetch a single resource
// @Tags Resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Envelope
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	res, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
