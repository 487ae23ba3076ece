package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shoreline-ops/scheduleboard/internal/board"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
	"github.com/shoreline-ops/scheduleboard/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries the rendered bytes plus response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the currently visible board window as a flat
// grid: one row per resource, one column per slot.
type ExportService struct {
	enabled bool
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewExportService constructs the service.
func NewExportService(enabled bool) *ExportService {
	return &ExportService{
		enabled: enabled,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// Render produces the export for one snapshot.
func (s *ExportService) Render(snap board.Snapshot, format ExportFormat) (*ExportResult, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "board export is disabled")
	}

	data := buildDataset(snap)
	stamp := snap.Window.From.Format("2006-01-02")

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("schedule-%s-%s.csv", snap.Window.Zoom, stamp),
		}, nil
	case FormatPDF:
		title := fmt.Sprintf("Schedule %s - %s", snap.Window.Zoom, stamp)
		content, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("schedule-%s-%s.pdf", snap.Window.Zoom, stamp),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown export format: "+string(format))
	}
}

func buildDataset(snap board.Snapshot) export.Dataset {
	headers := make([]string, 0, len(snap.Window.Slots)+1)
	headers = append(headers, "Resource")
	for _, slot := range snap.Window.Slots {
		headers = append(headers, slotLabel(slot, snap.Window.Zoom))
	}

	var rows []map[string]string
	for _, group := range snap.Groups {
		for _, row := range group.Rows {
			record := make(map[string]string, len(headers))
			name := row.Resource.Name
			if row.Indent > 0 {
				name = "  " + name
			}
			record["Resource"] = name
			for i, cell := range row.Cells {
				var titles []string
				for _, placement := range cell {
					title := placement.Event.Title
					if title == "" {
						title = placement.Category
					}
					titles = append(titles, title)
				}
				record[headers[i+1]] = strings.Join(titles, " / ")
			}
			rows = append(rows, record)
		}
	}

	return export.Dataset{Headers: headers, Rows: rows}
}

func slotLabel(slot time.Time, zoom board.ZoomLevel) string {
	switch zoom {
	case board.Zoom15Min, board.ZoomHour:
		return slot.Format("15:04")
	case board.ZoomDay, board.ZoomWeek:
		return slot.Format("Mon 02 Jan")
	case board.ZoomMonth:
		return slot.Format("02")
	case board.ZoomSeason:
		return slot.Format("02 Jan")
	default:
		return slot.Format("Jan")
	}
}
