package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/twpayne/go-polyline"
)

// ErrMissingEndpoints is returned when origin or destination is empty.
var ErrMissingEndpoints = errors.New("origin and destination must be non-empty")

// Planner computes multi-leg driving routes and forwards their summaries
// to the route log.
type Planner struct {
	provider  DirectionsProvider
	forwarder *Forwarder
}

func NewPlanner(provider DirectionsProvider, forwarder *Forwarder) *Planner {
	return &Planner{provider: provider, forwarder: forwarder}
}

// Plan requests a driving route through origin, the ordered waypoint
// addresses, and destination, then aggregates the legs into a summary:
// total distance and duration, the flattened path, the bounding box the
// map must fit, and the rendered distance/duration strings. The summary
// is forwarded to the route log in the background; a forwarding failure
// never affects the returned result.
func (p *Planner) Plan(ctx context.Context, origin, destination string, waypoints []string) (*RouteSummary, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, ErrMissingEndpoints
	}

	stops := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		if w = strings.TrimSpace(w); w != "" {
			stops = append(stops, w)
		}
	}

	directions, err := p.provider.Directions(ctx, origin, destination, stops)
	if err != nil {
		slog.Error("directions request failed",
			"origin", origin,
			"destination", destination,
			"waypoints", len(stops),
			"error", err)
		return nil, fmt.Errorf("compute route %q -> %q: %w", origin, destination, err)
	}

	summary := aggregate(directions)
	summary.Origin = origin
	summary.Destination = destination
	summary.Waypoints = stops
	summary.Viewport = FitBounds(&summary.Bounds)

	if p.forwarder != nil {
		p.forwarder.Forward(summary)
	}
	return summary, nil
}

// aggregate walks every leg in order, summing distance and duration,
// flattening each step's path points into one ordered sequence, and
// growing the bounding box over every leg endpoint and path point.
func aggregate(d *Directions) *RouteSummary {
	summary := &RouteSummary{Path: []Coordinates{}}

	for _, leg := range d.Legs {
		summary.DistanceMeters += leg.DistanceMeters
		summary.DurationSeconds += leg.DurationSeconds

		summary.Bounds.Extend(leg.Start)
		summary.Bounds.Extend(leg.End)

		for _, step := range leg.Steps {
			for _, point := range step.Path {
				summary.Path = append(summary.Path, point)
				summary.Bounds.Extend(point)
			}
		}
	}

	summary.FormattedDistance = FormatDistance(summary.DistanceMeters)
	summary.FormattedDuration = FormatDuration(summary.DurationSeconds)
	summary.Polyline = encodePath(summary.Path)
	return summary
}

func encodePath(path []Coordinates) string {
	if len(path) == 0 {
		return ""
	}
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lng})
	}
	return string(polyline.EncodeCoords(coords))
}
