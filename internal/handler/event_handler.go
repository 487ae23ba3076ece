package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoreline-ops/scheduleboard/internal/models"
	"github.com/shoreline-ops/scheduleboard/internal/service"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
	"github.com/shoreline-ops/scheduleboard/pkg/response"
)

type eventService interface {
	List(ctx context.Context, req service.EventListRequest) ([]models.ScheduleEvent, error)
	Create(ctx context.Context, req service.CreateEventRequest) (*models.ScheduleEvent, error)
	Update(ctx context.Context, id string, req service.UpdateEventRequest) (*models.ScheduleEvent, error)
	Delete(ctx context.Context, id string) error
}

// EventHandler wires the schedule-event service to HTTP endpoints.
type EventHandler struct {
	service eventService
}

// NewEventHandler constructs the handler.
func NewEventHandler(service eventService) *EventHandler {
	return &EventHandler{service: service}
}

// List godoc
// @Summary List events overlapping a window
// @Tags Events
// @Produce json
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end, exclusive (RFC3339)"
// @Param resources query string false "Comma-separated resource ID filter"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	from, err := parseInstant(c.Query("from"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid from, expected RFC3339"))
		return
	}
	to, err := parseInstant(c.Query("to"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid to, expected RFC3339"))
		return
	}

	req := service.EventListRequest{From: from, To: to}
	if raw := strings.TrimSpace(c.Query("resources")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				req.ResourceIDs = append(req.ResourceIDs, part)
			}
		}
	}

	events, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Create godoc
// @Summary Create a schedule event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var body service.CreateEventRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid event payload"))
		return
	}

	ev, err := h.service.Create(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ev)
}

// Update godoc
// @Summary Update a schedule event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.UpdateEventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var body service.UpdateEventRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid event payload"))
		return
	}

	ev, err := h.service.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ev, nil)
}

// Delete godoc
// @Summary Delete a schedule event
// @Tags Events
// @Param id path string true "Event ID"
// @Success 204
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
