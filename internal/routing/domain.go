package routing

// Coordinates is a geographic position in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a geographic bounding box. The zero value is empty; the first
// Extend call initializes it to the given point.
type Bounds struct {
	SouthWest Coordinates `json:"southWest"`
	NorthEast Coordinates `json:"northEast"`
	set       bool
}

// Extend grows the box to include the given point.
func (b *Bounds) Extend(c Coordinates) {
	if !b.set {
		b.SouthWest = c
		b.NorthEast = c
		b.set = true
		return
	}
	if c.Lat < b.SouthWest.Lat {
		b.SouthWest.Lat = c.Lat
	}
	if c.Lat > b.NorthEast.Lat {
		b.NorthEast.Lat = c.Lat
	}
	if c.Lng < b.SouthWest.Lng {
		b.SouthWest.Lng = c.Lng
	}
	if c.Lng > b.NorthEast.Lng {
		b.NorthEast.Lng = c.Lng
	}
}

// Empty reports whether the box has never been extended.
func (b *Bounds) Empty() bool { return !b.set }

// Center returns the midpoint of the box.
func (b *Bounds) Center() Coordinates {
	return Coordinates{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lng: (b.SouthWest.Lng + b.NorthEast.Lng) / 2,
	}
}

// Step is a single maneuver within a leg, carrying the path points the
// vehicle travels along during that maneuver.
type Step struct {
	DistanceMeters  float64
	DurationSeconds float64
	Instruction     string
	Path            []Coordinates
}

// Leg is the drive between two consecutive stops on the route.
type Leg struct {
	Start           Coordinates
	End             Coordinates
	DistanceMeters  float64
	DurationSeconds float64
	Steps           []Step
}

// Directions is the raw result returned by a directions engine for one
// origin → waypoints → destination request.
type Directions struct {
	Legs []Leg
}

// RouteSummary is the aggregate derived from a Directions result: totals
// over all legs, the flattened path, the bounding box, and the rendered
// distance/duration strings.
type RouteSummary struct {
	Origin            string        `json:"origin"`
	Destination       string        `json:"destination"`
	Waypoints         []string      `json:"waypoints"`
	DistanceMeters    float64       `json:"distanceMeters"`
	DurationSeconds   float64       `json:"durationSeconds"`
	FormattedDistance string        `json:"distance"`
	FormattedDuration string        `json:"duration"`
	Polyline          string        `json:"polyline"`
	Path              []Coordinates `json:"path"`
	Bounds            Bounds        `json:"bounds"`
	Viewport          Viewport      `json:"viewport"`
}
