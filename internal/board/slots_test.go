package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Slot coverage: for every zoom level and a spread of anchors the
// generated slots exactly tile [from, to) with no gaps or overlaps.
func TestSlotsForTileWindowExactly(t *testing.T) {
	anchors := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 29),
		date(2024, time.March, 1),
		date(2023, time.December, 31),
		date(2025, time.July, 15),
	}

	for _, zoom := range ZoomLevels {
		cfg, ok := ConfigFor(zoom)
		require.True(t, ok)

		for _, anchor := range anchors {
			from, to := cfg.RangeFor(anchor)
			slots, err := SlotsFor(anchor, zoom)
			require.NoError(t, err)
			require.NotEmpty(t, slots, "%s %s", zoom, anchor)

			assert.Equal(t, cfg.SlotCount(from, to), len(slots), "%s %s", zoom, anchor)
			assert.True(t, slots[0].Equal(from), "%s first slot must open the window", zoom)

			for i := range slots {
				if i > 0 {
					assert.True(t, slots[i].After(slots[i-1]), "%s slots must be strictly increasing", zoom)
				}
				end := SlotEnd(slots, i, to)
				assert.True(t, end.After(slots[i]), "%s slot %d must be non-empty", zoom, i)
				if i+1 < len(slots) {
					assert.True(t, end.Equal(slots[i+1]), "%s slot %d must touch its successor", zoom, i)
				} else {
					assert.True(t, end.Equal(to), "%s final slot must close the window", zoom)
				}
			}
		}
	}
}

func TestSlotsForUnknownZoom(t *testing.T) {
	_, err := SlotsFor(date(2024, time.March, 1), ZoomLevel("decade"))
	require.Error(t, err)
}

func TestSlotsForYearAreMonthStarts(t *testing.T) {
	slots, err := SlotsFor(date(2024, time.May, 20), ZoomYear)
	require.NoError(t, err)
	require.Len(t, slots, 12)
	for i, slot := range slots {
		assert.Equal(t, time.Month(i+1), slot.Month())
		assert.Equal(t, 1, slot.Day())
	}
}

func TestSlotsForMonthAreDayStarts(t *testing.T) {
	slots, err := SlotsFor(date(2024, time.February, 14), ZoomMonth)
	require.NoError(t, err)
	require.Len(t, slots, 29)
	assert.Equal(t, date(2024, time.February, 1), slots[0])
	assert.Equal(t, date(2024, time.February, 29), slots[28])
}
