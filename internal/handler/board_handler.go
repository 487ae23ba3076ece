package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoreline-ops/scheduleboard/internal/board"
	"github.com/shoreline-ops/scheduleboard/internal/models"
	"github.com/shoreline-ops/scheduleboard/internal/service"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
	"github.com/shoreline-ops/scheduleboard/pkg/response"
)

type boardService interface {
	Snapshot(ctx context.Context, req service.SnapshotRequest) (board.Snapshot, error)
	Navigate(ctx context.Context, direction int, req service.SnapshotRequest) (board.Snapshot, error)
	Today(ctx context.Context, req service.SnapshotRequest) (board.Snapshot, error)
	SlotClick(ctx context.Context, req service.SlotClickRequest) (*service.SlotClickResult, error)
}

type exportRenderer interface {
	Render(snap board.Snapshot, format service.ExportFormat) (*service.ExportResult, error)
}

type snapshotObserver interface {
	ObserveSnapshot(slotCount int)
}

// BoardHandler wires the board service to HTTP endpoints.
type BoardHandler struct {
	service  boardService
	exporter exportRenderer
	metrics  snapshotObserver
}

// NewBoardHandler constructs the handler. exporter and metrics may be nil.
func NewBoardHandler(service boardService, exporter exportRenderer, metrics snapshotObserver) *BoardHandler {
	return &BoardHandler{service: service, exporter: exporter, metrics: metrics}
}

// Get godoc
// @Summary Render the schedule board
// @Tags Board
// @Produce json
// @Param anchor query string false "Anchor date (YYYY-MM-DD). Defaults to the current anchor"
// @Param zoom query string false "Zoom level (15min, hour, day, week, month, season, year)"
// @Param q query string false "Resource search term"
// @Param types query string false "Comma-separated asset type filter"
// @Param includeInactive query bool false "Include inactive resources"
// @Success 200 {object} response.Envelope
// @Router /board [get]
func (h *BoardHandler) Get(c *gin.Context) {
	req, err := parseSnapshotRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	snap, err := h.service.Snapshot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe(snap)
	response.JSON(c, http.StatusOK, snap, nil)
}

type navigateRequest struct {
	Direction string `json:"direction" binding:"required,oneof=next prev"`
}

// Navigate godoc
// @Summary Page the board one step forward or back
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body navigateRequest true "Navigation direction"
// @Success 200 {object} response.Envelope
// @Router /board/navigate [post]
func (h *BoardHandler) Navigate(c *gin.Context) {
	var body navigateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "direction must be next or prev"))
		return
	}
	direction := 1
	if body.Direction == "prev" {
		direction = -1
	}

	snap, err := h.service.Navigate(c.Request.Context(), direction, service.SnapshotRequest{})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe(snap)
	response.JSON(c, http.StatusOK, snap, nil)
}

type zoomRequest struct {
	Zoom string `json:"zoom" binding:"required"`
}

// Zoom godoc
// @Summary Switch the board zoom level
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body zoomRequest true "Target zoom level"
// @Success 200 {object} response.Envelope
// @Router /board/zoom [post]
func (h *BoardHandler) Zoom(c *gin.Context) {
	var body zoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "zoom is required"))
		return
	}

	snap, err := h.service.Snapshot(c.Request.Context(), service.SnapshotRequest{Zoom: body.Zoom})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe(snap)
	response.JSON(c, http.StatusOK, snap, nil)
}

// Today godoc
// @Summary Snap the board back to the current date
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board/today [post]
func (h *BoardHandler) Today(c *gin.Context) {
	snap, err := h.service.Today(c.Request.Context(), service.SnapshotRequest{})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.observe(snap)
	response.JSON(c, http.StatusOK, snap, nil)
}

// SlotClick godoc
// @Summary Translate a grid click into a snapped booking start
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body service.SlotClickRequest true "Clicked cell"
// @Success 200 {object} response.Envelope
// @Router /board/slots/click [post]
func (h *BoardHandler) SlotClick(c *gin.Context) {
	var body service.SlotClickRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "resource_id and clicked_at are required"))
		return
	}

	result, err := h.service.SlotClick(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Export the visible board window
// @Tags Board
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "Export format (csv or pdf)"
// @Success 200 {file} binary
// @Router /board/export [get]
func (h *BoardHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "board export is disabled"))
		return
	}
	format := service.ExportFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	if format == "" {
		format = service.FormatCSV
	}

	snap, err := h.service.Snapshot(c.Request.Context(), service.SnapshotRequest{})
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exporter.Render(snap, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *BoardHandler) observe(snap board.Snapshot) {
	if h.metrics != nil {
		h.metrics.ObserveSnapshot(len(snap.Window.Slots))
	}
}

func parseSnapshotRequest(c *gin.Context) (service.SnapshotRequest, error) {
	req := service.SnapshotRequest{
		Zoom:            strings.TrimSpace(c.Query("zoom")),
		Search:          strings.TrimSpace(c.Query("q")),
		IncludeInactive: c.Query("includeInactive") == "true",
	}

	if raw := strings.TrimSpace(c.Query("anchor")); raw != "" {
		anchor, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return req, appErrors.Clone(appErrors.ErrValidation, "invalid anchor, expected YYYY-MM-DD")
		}
		req.Anchor = &anchor
	}

	if raw := strings.TrimSpace(c.Query("types")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				req.AssetTypes = append(req.AssetTypes, models.AssetType(strings.ToUpper(part)))
			}
		}
	}

	return req, nil
}
