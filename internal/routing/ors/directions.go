package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/OpenRelief/relief/internal/routing"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
				Steps    []struct {
					Distance    float64 `json:"distance"`
					Duration    float64 `json:"duration"`
					Instruction string  `json:"instruction"`
					WayPoints   []int   `json:"way_points"`
				} `json:"steps"`
			} `json:"segments"`
			WayPoints []int `json:"way_points"`
		} `json:"properties"`
	} `json:"features"`
}

// Directions computes a driving route visiting origin, the waypoints in
// the given order, and destination. Addresses are geocoded first; the
// stop order is passed through unchanged, ORS never reorders stops
// unless optimization is requested, which it is not.
func (c *Client) Directions(ctx context.Context, origin, destination string, waypoints []string) (*routing.Directions, error) {
	stops := make([]string, 0, 2+len(waypoints))
	stops = append(stops, origin)
	stops = append(stops, waypoints...)
	stops = append(stops, destination)

	coords := make([][]float64, 0, len(stops))
	for _, stop := range stops {
		pos, err := c.geocode(ctx, stop)
		if err != nil {
			return nil, fmt.Errorf("resolve stop %q: %w", stop, err)
		}
		coords = append(coords, []float64{pos.Lng, pos.Lat})
	}

	body, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return nil, fmt.Errorf("encode directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return nil, fmt.Errorf("execute directions request: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return nil, fmt.Errorf("no route found from %q to %q", origin, destination)
	}

	return mapDirections(&decoded)
}

// mapDirections converts the geojson feature into legs and steps. Step
// way_points index into the feature geometry; each step's path is the
// corresponding geometry slice.
func mapDirections(decoded *directionsResponse) (*routing.Directions, error) {
	feature := decoded.Features[0]
	geometry := feature.Geometry.Coordinates
	stopIndexes := feature.Properties.WayPoints

	toCoord := func(i int) (routing.Coordinates, error) {
		if i < 0 || i >= len(geometry) || len(geometry[i]) != 2 {
			return routing.Coordinates{}, fmt.Errorf("geometry index %d out of range", i)
		}
		return routing.Coordinates{Lng: geometry[i][0], Lat: geometry[i][1]}, nil
	}

	segments := feature.Properties.Segments
	if len(stopIndexes) != len(segments)+1 {
		return nil, fmt.Errorf("mismatched segments (%d) and stops (%d)", len(segments), len(stopIndexes))
	}

	out := &routing.Directions{Legs: make([]routing.Leg, 0, len(segments))}
	for i, seg := range segments {
		start, err := toCoord(stopIndexes[i])
		if err != nil {
			return nil, err
		}
		end, err := toCoord(stopIndexes[i+1])
		if err != nil {
			return nil, err
		}

		leg := routing.Leg{
			Start:           start,
			End:             end,
			DistanceMeters:  seg.Distance,
			DurationSeconds: seg.Duration,
			Steps:           make([]routing.Step, 0, len(seg.Steps)),
		}

		for _, st := range seg.Steps {
			step := routing.Step{
				DistanceMeters:  st.Distance,
				DurationSeconds: st.Duration,
				Instruction:     st.Instruction,
			}
			if len(st.WayPoints) == 2 {
				from, to := st.WayPoints[0], st.WayPoints[1]
				for j := from; j <= to; j++ {
					p, err := toCoord(j)
					if err != nil {
						return nil, err
					}
					step.Path = append(step.Path, p)
				}
			}
			leg.Steps = append(leg.Steps, step)
		}

		out.Legs = append(out.Legs, leg)
	}

	return out, nil
}
