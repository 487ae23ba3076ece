package board

import (
	"time"

	"github.com/shoreline-ops/scheduleboard/internal/models"
	appErrors "github.com/shoreline-ops/scheduleboard/pkg/errors"
)

// RangeChangeFunc is the external data-fetch notification: invoked
// once whenever the visible (from, to, zoom) triple changes, never on
// every render.
type RangeChangeFunc func(from, to time.Time, zoom ZoomLevel)

// VisibleWindow is the derived render window: never persisted,
// recomputed whenever anchor or zoom changes.
type VisibleWindow struct {
	From  time.Time   `json:"from"`
	To    time.Time   `json:"to"`
	Zoom  ZoomLevel   `json:"zoom"`
	Slots []time.Time `json:"slots"`
}

// Placement is one event box positioned inside one slot cell.
type Placement struct {
	Event      models.ScheduleEvent `json:"event"`
	Projection Projection           `json:"projection"`
	Category   string               `json:"category"`
	// ShowLabel is false for boxes narrower than the legibility
	// threshold; they keep their computed width but drop their text.
	ShowLabel bool `json:"show_label"`
}

// RowView is one rendered grid row: cell i holds the placements for
// slot i.
type RowView struct {
	Resource models.Resource `json:"resource"`
	Indent   int             `json:"indent"`
	Cells    [][]Placement   `json:"cells"`
}

// GroupView is an asset-type section of the rendered board.
type GroupView struct {
	AssetType models.AssetType `json:"asset_type"`
	Rows      []RowView        `json:"rows"`
}

// NowMarker is the live time indicator, present only when now falls
// inside the window at a zoom fine enough to show it.
type NowMarker struct {
	Percent float64 `json:"percent"`
}

// Snapshot is one full render pass of the board.
type Snapshot struct {
	Window        VisibleWindow `json:"window"`
	Groups        []GroupView   `json:"groups"`
	Now           *NowMarker    `json:"now,omitempty"`
	Empty         bool          `json:"empty"`
	EmptyAction   string        `json:"empty_action,omitempty"`
	SkippedEvents int           `json:"skipped_events"`
	SkippedUnits  int           `json:"skipped_units"`
}

// ControllerConfig seeds a board controller.
type ControllerConfig struct {
	Anchor          time.Time
	Zoom            ZoomLevel
	SnapQuantum     time.Duration
	LabelMinPercent float64
	EmptyAction     string
	// Now is injectable for tests; defaults to time.Now.
	Now           func() time.Time
	OnRangeChange RangeChangeFunc
}

// Controller is the engine's composition root. It owns the only
// mutable state (anchor date and zoom level) and drives the pure
// pipeline on every render pass.
type Controller struct {
	anchor time.Time
	zoom   ZoomLevel

	snapQuantum time.Duration
	labelMin    float64
	emptyAction string
	now         func() time.Time

	onRangeChange RangeChangeFunc
	lastFrom      time.Time
	lastTo        time.Time
	lastZoom      ZoomLevel
	notified      bool
}

// NewController validates the config and emits the initial range
// change so the data collaborator can issue its first fetch.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if _, ok := ConfigFor(cfg.Zoom); !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidZoom, "unknown zoom level: "+string(cfg.Zoom))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SnapQuantum <= 0 {
		cfg.SnapQuantum = 15 * time.Minute
	}
	if cfg.LabelMinPercent <= 0 {
		cfg.LabelMinPercent = 20
	}
	if cfg.Anchor.IsZero() {
		cfg.Anchor = Today(cfg.Now())
	}

	c := &Controller{
		anchor:        StartOfDay(cfg.Anchor),
		zoom:          cfg.Zoom,
		snapQuantum:   cfg.SnapQuantum,
		labelMin:      cfg.LabelMinPercent,
		emptyAction:   cfg.EmptyAction,
		now:           cfg.Now,
		onRangeChange: cfg.OnRangeChange,
	}
	c.notifyRange()
	return c, nil
}

// Anchor returns the current anchor date.
func (c *Controller) Anchor() time.Time { return c.anchor }

// Zoom returns the current zoom level.
func (c *Controller) Zoom() ZoomLevel { return c.zoom }

// Window recomputes the visible window and slot list for the current
// anchor and zoom.
func (c *Controller) Window() VisibleWindow {
	cfg, _ := ConfigFor(c.zoom)
	from, to := cfg.RangeFor(c.anchor)
	slots, _ := SlotsFor(c.anchor, c.zoom)
	return VisibleWindow{From: from, To: to, Zoom: c.zoom, Slots: slots}
}

// Navigate pages the anchor one step and notifies on the new range.
func (c *Controller) Navigate(direction int) error {
	next, err := Advance(c.anchor, c.zoom, direction)
	if err != nil {
		return err
	}
	c.anchor = next
	c.notifyRange()
	return nil
}

// SetZoom switches granularity, keeping the anchor.
func (c *Controller) SetZoom(zoom ZoomLevel) error {
	if _, ok := ConfigFor(zoom); !ok {
		return appErrors.Clone(appErrors.ErrInvalidZoom, "unknown zoom level: "+string(zoom))
	}
	c.zoom = zoom
	c.notifyRange()
	return nil
}

// SetAnchor jumps to an arbitrary date, normalized to midnight.
func (c *Controller) SetAnchor(anchor time.Time) {
	c.anchor = StartOfDay(anchor)
	c.notifyRange()
}

// Today snaps the anchor back to the current date.
func (c *Controller) Today() {
	c.anchor = Today(c.now())
	c.notifyRange()
}

// SlotClick translates a raw click instant into the snapped,
// bookable candidate start handed to the booking collaborator.
func (c *Controller) SlotClick(clickedAt time.Time) time.Time {
	return SnapToQuantum(clickedAt, c.snapQuantum)
}

// notifyRange invokes the range-change callback exactly once per
// distinct (from, to, zoom) triple.
func (c *Controller) notifyRange() {
	cfg, _ := ConfigFor(c.zoom)
	from, to := cfg.RangeFor(c.anchor)
	if c.notified && from.Equal(c.lastFrom) && to.Equal(c.lastTo) && c.zoom == c.lastZoom {
		return
	}
	c.lastFrom, c.lastTo, c.lastZoom = from, to, c.zoom
	c.notified = true
	if c.onRangeChange != nil {
		c.onRangeChange(from, to, c.zoom)
	}
}

// BuildSnapshot assembles one render pass from the resource and event
// snapshots currently supplied by the data collaborators. Snapshots
// that lag the displayed window are rendered as-is; malformed events
// and orphaned capability units are skipped and counted.
func (c *Controller) BuildSnapshot(resources []models.Resource, events []models.ScheduleEvent) Snapshot {
	window := c.Window()

	snap := Snapshot{Window: window, SkippedUnits: CountDroppedUnits(resources)}
	if len(resources) == 0 {
		snap.Empty = true
		snap.EmptyAction = c.emptyAction
		return snap
	}

	byResource := make(map[string][]models.ScheduleEvent)
	for _, ev := range events {
		if !ev.Valid() {
			snap.SkippedEvents++
			continue
		}
		byResource[ev.ResourceID] = append(byResource[ev.ResourceID], ev)
	}

	for _, group := range IndexResources(resources) {
		view := GroupView{AssetType: group.AssetType, Rows: make([]RowView, 0, len(group.Rows))}
		for _, row := range group.Rows {
			view.Rows = append(view.Rows, RowView{
				Resource: row.Resource,
				Indent:   row.Indent,
				Cells:    c.projectRow(window, byResource[row.Resource.ID]),
			})
		}
		snap.Groups = append(snap.Groups, view)
	}

	if ShowsNowIndicator(c.zoom) {
		if pct, ok := NowPosition(c.now(), window.From, window.To); ok {
			snap.Now = &NowMarker{Percent: pct}
		}
	}

	return snap
}

func (c *Controller) projectRow(window VisibleWindow, events []models.ScheduleEvent) [][]Placement {
	cells := make([][]Placement, len(window.Slots))
	if len(events) == 0 {
		return cells
	}
	for i, slotStart := range window.Slots {
		slotEnd := SlotEnd(window.Slots, i, window.To)
		for _, ev := range events {
			proj, ok := Project(ev.StartDate, ev.EndDate, slotStart, slotEnd)
			if !ok {
				continue
			}
			cells[i] = append(cells[i], Placement{
				Event:      ev,
				Projection: proj,
				Category:   ResolveCategory(ev.EventType, ev.Status),
				ShowLabel:  proj.WidthPercent >= c.labelMin,
			})
		}
	}
	return cells
}
