package board

// The board renders three independently scrollable panes: the resource
// sidebar (vertical), the time-axis header (horizontal) and the event
// grid (both). Scrolling one pane must drag its partner along without
// the mirrored assignment re-triggering the synchronizer forever.

// Axis is a synchronized scroll direction.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Pane identifies one of the three scrollable panes.
type Pane int

const (
	PaneSidebar Pane = iota
	PaneGrid
	PaneHeader
)

// Viewport is the host-side handle for one pane's scroll position.
type Viewport interface {
	Offset(axis Axis) float64
	SetOffset(axis Axis, value float64)
}

// TickScheduler defers a guard release to the host's next animation
// frame. A nil scheduler releases immediately, which is what the
// synchronizer's own tests and headless hosts want.
type TickScheduler func(release func())

// axisGuard suppresses the re-entrant echo of a mirrored scroll
// assignment. run is a scoped acquisition: the release is scheduled in
// a defer so the guard cannot stay wedged even if the mirror panics.
type axisGuard struct {
	held bool
}

func (g *axisGuard) run(schedule TickScheduler, fn func()) bool {
	if g.held {
		return false
	}
	g.held = true
	defer schedule(func() { g.held = false })
	fn()
	return true
}

// Synchronizer keeps the three panes in lock-step. It is not
// goroutine-safe: like the rest of the engine it expects to be driven
// from the host's single UI event loop.
type Synchronizer struct {
	sidebar Viewport
	grid    Viewport
	header  Viewport

	guards   [2]axisGuard
	schedule TickScheduler
}

// NewSynchronizer wires the three panes together.
func NewSynchronizer(sidebar, grid, header Viewport, schedule TickScheduler) *Synchronizer {
	if schedule == nil {
		schedule = func(release func()) { release() }
	}
	return &Synchronizer{sidebar: sidebar, grid: grid, header: header, schedule: schedule}
}

// OnScroll handles a scroll event from source on the given axis. If
// the event is the echo of a sync already in flight on that axis it is
// ignored; otherwise the source's offset is copied to the paired pane.
// Returns whether the event was treated as a user action.
func (s *Synchronizer) OnScroll(source Pane, axis Axis) bool {
	from, to, ok := s.pairFor(source, axis)
	if !ok {
		return false
	}
	return s.guards[axis].run(s.schedule, func() {
		to.SetOffset(axis, from.Offset(axis))
	})
}

// pairFor resolves the mirror target for a scroll event. Vertical
// pairs sidebar and grid; horizontal pairs header and grid. The
// header never scrolls vertically and the sidebar never horizontally.
func (s *Synchronizer) pairFor(source Pane, axis Axis) (Viewport, Viewport, bool) {
	switch axis {
	case AxisVertical:
		switch source {
		case PaneSidebar:
			return s.sidebar, s.grid, true
		case PaneGrid:
			return s.grid, s.sidebar, true
		}
	case AxisHorizontal:
		switch source {
		case PaneHeader:
			return s.header, s.grid, true
		case PaneGrid:
			return s.grid, s.header, true
		}
	}
	return nil, nil, false
}

// GuardHeld exposes guard state for settling checks.
func (s *Synchronizer) GuardHeld(axis Axis) bool {
	return s.guards[axis].held
}
