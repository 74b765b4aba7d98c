package routing

import "context"

// Place is one suggestion returned by an autocompleter or geocoder.
type Place struct {
	Label    string      `json:"label"`
	Position Coordinates `json:"position"`
}

// DirectionsProvider computes a driving route through origin, the ordered
// waypoints, and destination. Implementations must preserve the given
// waypoint order.
type DirectionsProvider interface {
	Directions(ctx context.Context, origin, destination string, waypoints []string) (*Directions, error)
}

// Autocompleter suggests places for a partial address entry.
type Autocompleter interface {
	Autocomplete(ctx context.Context, text string) ([]Place, error)
}

// Geocoder resolves a position back to a formatted address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, pos Coordinates) (string, error)
}
