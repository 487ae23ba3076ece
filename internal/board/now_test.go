package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowPositionInsideWindow(t *testing.T) {
	from := date(2024, time.March, 5)
	to := from.AddDate(0, 0, 1)

	pct, ok := NowPosition(from.Add(6*time.Hour), from, to)
	assert.True(t, ok)
	assert.InDelta(t, 25, pct, 1e-9)

	pct, ok = NowPosition(from, from, to)
	assert.True(t, ok, "marker renders at the inclusive lower bound")
	assert.Equal(t, 0.0, pct)
}

func TestNowPositionBoundaries(t *testing.T) {
	from := date(2024, time.March, 5)
	to := from.AddDate(0, 0, 1)

	_, ok := NowPosition(to, from, to)
	assert.False(t, ok, "upper bound is exclusive")

	_, ok = NowPosition(from.Add(-time.Nanosecond), from, to)
	assert.False(t, ok)

	_, ok = NowPosition(to.Add(time.Hour), from, to)
	assert.False(t, ok)

	// Everything inside [from, to) lands in [0, 100).
	for h := 0; h < 24; h++ {
		pct, ok := NowPosition(from.Add(time.Duration(h)*time.Hour), from, to)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.Less(t, pct, 100.0)
	}
}

func TestShowsNowIndicatorOnlyAtFineZooms(t *testing.T) {
	assert.True(t, ShowsNowIndicator(Zoom15Min))
	assert.True(t, ShowsNowIndicator(ZoomHour))
	for _, zoom := range []ZoomLevel{ZoomDay, ZoomWeek, ZoomMonth, ZoomSeason, ZoomYear} {
		assert.False(t, ShowsNowIndicator(zoom), zoom)
	}
}
