package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoreline-ops/scheduleboard/internal/board"
	"github.com/shoreline-ops/scheduleboard/internal/service"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

type fakeBoardSrv struct {
	snap          board.Snapshot
	err           error
	lastReq       service.SnapshotRequest
	lastDirection int
	clickResult   *service.SlotClickResult
	clickErr      error
	todayCalls    int
}

func (f *fakeBoardSrv) Snapshot(_ context.Context, req service.SnapshotRequest) (board.Snapshot, error) {
	f.lastReq = req
	return f.snap, f.err
}

func (f *fakeBoardSrv) Navigate(_ context.Context, direction int, req service.SnapshotRequest) (board.Snapshot, error) {
	f.lastDirection = direction
	f.lastReq = req
	return f.snap, f.err
}

func (f *fakeBoardSrv) Today(_ context.Context, req service.SnapshotRequest) (board.Snapshot, error) {
	f.todayCalls++
	f.lastReq = req
	return f.snap, f.err
}

func (f *fakeBoardSrv) SlotClick(_ context.Context, req service.SlotClickRequest) (*service.SlotClickResult, error) {
	return f.clickResult, f.clickErr
}

type fakeExporter struct {
	result *service.ExportResult
	err    error
	format service.ExportFormat
}

func (f *fakeExporter) Render(_ board.Snapshot, format service.ExportFormat) (*service.ExportResult, error) {
	f.format = format
	return f.result, f.err
}

func daySnapshot() board.Snapshot {
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	return board.Snapshot{Window: board.VisibleWindow{
		From: from,
		To:   from.AddDate(0, 0, 7),
		Zoom: board.ZoomDay,
	}}
}

func testContext(t *testing.T, method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, rec
}

func TestBoardHandlerGet(t *testing.T) {
	srv := &fakeBoardSrv{snap: daySnapshot()}
	h := NewBoardHandler(srv, nil, nil)

	c, rec := testContext(t, http.MethodGet, "/board?anchor=2024-03-01&zoom=day&q=boat&types=watercraft,vehicle", "")
	h.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.lastReq.Anchor)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), *srv.lastReq.Anchor)
	assert.Equal(t, "day", srv.lastReq.Zoom)
	assert.Equal(t, "boat", srv.lastReq.Search)
	require.Len(t, srv.lastReq.AssetTypes, 2)
	assert.Equal(t, "WATERCRAFT", string(srv.lastReq.AssetTypes[0]))
}

func TestBoardHandlerGetRejectsBadAnchor(t *testing.T) {
	h := NewBoardHandler(&fakeBoardSrv{}, nil, nil)

	c, rec := testContext(t, http.MethodGet, "/board?anchor=01-03-2024", "")
	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBoardHandlerNavigate(t *testing.T) {
	srv := &fakeBoardSrv{snap: daySnapshot()}
	h := NewBoardHandler(srv, nil, nil)

	c, rec := testContext(t, http.MethodPost, "/board/navigate", `{"direction":"prev"}`)
	h.Navigate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, srv.lastDirection)
}

func TestBoardHandlerNavigateRejectsUnknownDirection(t *testing.T) {
	h := NewBoardHandler(&fakeBoardSrv{}, nil, nil)

	c, rec := testContext(t, http.MethodPost, "/board/navigate", `{"direction":"sideways"}`)
	h.Navigate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBoardHandlerZoomPropagatesError(t *testing.T) {
	srv := &fakeBoardSrv{err: appErrors.Clone(appErrors.ErrInvalidZoom, "unknown zoom level: decade")}
	h := NewBoardHandler(srv, nil, nil)

	c, rec := testContext(t, http.MethodPost, "/board/zoom", `{"zoom":"decade"}`)
	h.Zoom(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, appErrors.ErrInvalidZoom.Code, envelope.Error.Code)
}

func TestBoardHandlerToday(t *testing.T) {
	srv := &fakeBoardSrv{snap: daySnapshot()}
	h := NewBoardHandler(srv, nil, nil)

	c, rec := testContext(t, http.MethodPost, "/board/today", "")
	h.Today(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, srv.todayCalls)
}

func TestBoardHandlerSlotClick(t *testing.T) {
	want := time.Date(2024, time.March, 1, 14, 45, 0, 0, time.UTC)
	srv := &fakeBoardSrv{clickResult: &service.SlotClickResult{ResourceID: "boat-1", SnappedStart: want}}
	h := NewBoardHandler(srv, nil, nil)

	c, rec := testContext(t, http.MethodPost, "/board/slots/click",
		`{"resource_id":"boat-1","clicked_at":"2024-03-01T14:52:00Z"}`)
	h.SlotClick(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data service.SlotClickResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "boat-1", envelope.Data.ResourceID)
	assert.True(t, want.Equal(envelope.Data.SnappedStart))
}

func TestBoardHandlerExport(t *testing.T) {
	exporter := &fakeExporter{result: &service.ExportResult{
		Content:     []byte("Resource,Fri 01 Mar\n"),
		ContentType: "text/csv",
		Filename:    "schedule-day-2024-03-01.csv",
	}}
	h := NewBoardHandler(&fakeBoardSrv{snap: daySnapshot()}, exporter, nil)

	c, rec := testContext(t, http.MethodGet, "/board/export?format=csv", "")
	h.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.FormatCSV, exporter.format)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "schedule-day-2024-03-01.csv")
}

func TestBoardHandlerExportDisabled(t *testing.T) {
	h := NewBoardHandler(&fakeBoardSrv{}, nil, nil)

	c, rec := testContext(t, http.MethodGet, "/board/export", "")
	h.Export(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, appErrors.ErrUnavailable.Code, envelope.Error.Code)
}
