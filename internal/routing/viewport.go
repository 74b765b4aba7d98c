package routing

import "math"

// Viewport is the map camera state handed back to clients: where to
// center and how far to zoom.
type Viewport struct {
	Center Coordinates `json:"center"`
	Zoom   int         `json:"zoom"`
}

const (
	zoomMin    = 2
	zoomMax    = 18
	zoomStreet = 14
)

// FitBounds computes the viewport that frames the given bounding box,
// picking the largest zoom level whose world span still contains the box.
func FitBounds(b *Bounds) Viewport {
	if b.Empty() {
		return Viewport{Zoom: zoomMin}
	}

	latSpan := b.NorthEast.Lat - b.SouthWest.Lat
	lngSpan := b.NorthEast.Lng - b.SouthWest.Lng
	span := math.Max(latSpan, lngSpan)
	if span <= 0 {
		return Viewport{Center: b.Center(), Zoom: zoomMax}
	}

	// Zoom level z shows roughly 360/2^z degrees across the viewport.
	zoom := int(math.Floor(math.Log2(360 / span)))
	if zoom < zoomMin {
		zoom = zoomMin
	}
	if zoom > zoomMax {
		zoom = zoomMax
	}
	return Viewport{Center: b.Center(), Zoom: zoom}
}

// RecentreOn returns a viewport centered on the given position at the
// fixed street-level zoom used after a waypoint resolves or a position
// fix arrives.
func RecentreOn(c Coordinates) Viewport {
	return Viewport{Center: c, Zoom: zoomStreet}
}
