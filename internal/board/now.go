package board

import "time"

// NowPosition places the live time marker as a percentage of the
// visible [from, to) window. The second return is false when now falls
// outside the window (including now == to, the exclusive bound); the
// marker must not render at all in that case.
func NowPosition(now, from, to time.Time) (float64, bool) {
	if now.Before(from) || !now.Before(to) {
		return 0, false
	}
	return float64(now.Sub(from)) / float64(to.Sub(from)) * 100, true
}

// ShowsNowIndicator reports whether a zoom level renders the marker.
// Coarser zooms suppress it rather than drawing a near-invisible
// sliver.
func ShowsNowIndicator(zoom ZoomLevel) bool {
	return zoom == Zoom15Min || zoom == ZoomHour
}
