package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoreline-ops/scheduleboard/internal/board"
	"github.com/shoreline-ops/scheduleboard/internal/models"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

func sampleSnapshot(t *testing.T) board.Snapshot {
	t.Helper()
	controller, err := board.NewController(board.ControllerConfig{
		Anchor: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Zoom:   board.ZoomDay,
	})
	require.NoError(t, err)

	resources := []models.Resource{
		{ID: "boat-1", Name: "Boat 1", AssetType: models.AssetWatercraft},
	}
	events := []models.ScheduleEvent{
		{
			ID:         "ev-1",
			ResourceID: "boat-1",
			EventType:  "BOOKED",
			StartDate:  time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			Title:      "Charter",
		},
	}
	return controller.BuildSnapshot(resources, events)
}

func TestExportServiceDisabled(t *testing.T) {
	svc := NewExportService(false)

	_, err := svc.Render(sampleSnapshot(t), FormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnavailable.Code, appErrors.FromError(err).Code)
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(true)

	res, err := svc.Render(sampleSnapshot(t), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", res.ContentType)
	assert.Equal(t, "schedule-day-2024-03-01.csv", res.Filename)

	content := string(res.Content)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 2, "header plus one resource row")
	assert.True(t, strings.HasPrefix(lines[0], "Resource,"))
	assert.Contains(t, lines[1], "Boat 1")
	assert.Contains(t, lines[1], "Charter")
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(true)

	res, err := svc.Render(sampleSnapshot(t), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.True(t, strings.HasPrefix(string(res.Content), "%PDF"))
}

func TestExportServiceUnknownFormat(t *testing.T) {
	svc := NewExportService(true)

	_, err := svc.Render(sampleSnapshot(t), ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResourceServiceGrouped(t *testing.T) {
	parent := "truck-1"
	repo := &resourceRepoStub{resources: []models.Resource{
		{ID: "truck-1", Name: "Truck 1", AssetType: models.AssetVehicle},
		{ID: "winch-1", Name: "Winch", AssetType: models.AssetEquipment, ParentAssetID: &parent},
	}}
	svc := NewResourceService(repo, nil)

	groups, err := svc.Grouped(context.Background(), models.ResourceFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Rows, 2)
	assert.Equal(t, 1, groups[0].Rows[1].Indent)
}

func TestResourceServiceGetNotFound(t *testing.T) {
	svc := NewResourceService(&resourceRepoStub{}, nil)

	_, err := svc.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
