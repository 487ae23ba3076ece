package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shoreline-ops/scheduleboard/internal/models"
	"github.com/shoreline-ops/scheduleboard/internal/service"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

type fakeEventSrv struct {
	events   []models.ScheduleEvent
	listErr  error
	lastList service.EventListRequest
	created  *models.ScheduleEvent
	updated  *models.ScheduleEvent
	deleted  []string
	err      error
}

func (f *fakeEventSrv) List(_ context.Context, req service.EventListRequest) ([]models.ScheduleEvent, error) {
	f.lastList = req
	return f.events, f.listErr
}

func (f *fakeEventSrv) Create(_ context.Context, req service.CreateEventRequest) (*models.ScheduleEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &models.ScheduleEvent{ID: "ev-1", ResourceID: req.ResourceID, Title: req.Title}
	return f.created, nil
}

func (f *fakeEventSrv) Update(_ context.Context, id string, req service.UpdateEventRequest) (*models.ScheduleEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = &models.ScheduleEvent{ID: id, ResourceID: req.ResourceID, Title: req.Title}
	return f.updated, nil
}

func (f *fakeEventSrv) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func TestEventHandlerListParsesWindow(t *testing.T) {
	srv := &fakeEventSrv{}
	h := NewEventHandler(srv)

	c, rec := testContext(t, http.MethodGet,
		"/events?from=2024-03-01T00:00:00Z&to=2024-03-08T00:00:00Z&resources=boat-1,boat-2", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), srv.lastList.From)
	assert.Equal(t, []string{"boat-1", "boat-2"}, srv.lastList.ResourceIDs)
}

func TestEventHandlerListAcceptsDateOnly(t *testing.T) {
	srv := &fakeEventSrv{}
	h := NewEventHandler(srv)

	c, rec := testContext(t, http.MethodGet, "/events?from=2024-03-01&to=2024-03-08", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), srv.lastList.To)
}

func TestEventHandlerListRejectsBadWindow(t *testing.T) {
	h := NewEventHandler(&fakeEventSrv{})

	c, rec := testContext(t, http.MethodGet, "/events?from=yesterday&to=2024-03-08", "")
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventHandlerCreate(t *testing.T) {
	srv := &fakeEventSrv{}
	h := NewEventHandler(srv)

	c, rec := testContext(t, http.MethodPost, "/events",
		`{"resource_id":"boat-1","event_type":"BOOKED","start_date":"2024-03-02T10:00:00Z","end_date":"2024-03-02T12:00:00Z","title":"Charter"}`)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "boat-1", srv.created.ResourceID)
}

func TestEventHandlerCreateRejectsMalformedBody(t *testing.T) {
	h := NewEventHandler(&fakeEventSrv{})

	c, rec := testContext(t, http.MethodPost, "/events", `{"resource_id":`)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventHandlerUpdatePropagatesNotFound(t *testing.T) {
	srv := &fakeEventSrv{err: appErrors.Clone(appErrors.ErrNotFound, "event not found")}
	h := NewEventHandler(srv)

	c, rec := testContext(t, http.MethodPut, "/events/ghost",
		`{"resource_id":"boat-1","event_type":"BOOKED","start_date":"2024-03-02T10:00:00Z","end_date":"2024-03-02T12:00:00Z","title":"Charter"}`)
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "ghost"})
	h.Update(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventHandlerDelete(t *testing.T) {
	srv := &fakeEventSrv{}
	h := NewEventHandler(srv)

	c, rec := testContext(t, http.MethodDelete, "/events/ev-1", "")
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "ev-1"})
	h.Delete(c)
	// c.Status defers the header write; the engine normally flushes it.
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"ev-1"}, srv.deleted)
}
