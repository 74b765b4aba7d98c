package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/OpenRelief/relief/internal/routing"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// normalize ensures consistent query text by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (c *Client) geocodeGet(ctx context.Context, endpoint string, params map[string]string) (*geocodeResponse, error) {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		if c.country != "" {
			q.Set("boundary.country", c.country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	return &decoded, nil
}

// Autocomplete suggests places for a partial address entry
// (/geocode/autocomplete).
func (c *Client) Autocomplete(ctx context.Context, text string) ([]routing.Place, error) {
	text = normalize(text)
	if text == "" {
		return nil, nil
	}

	decoded, err := c.geocodeGet(ctx, "/geocode/autocomplete", map[string]string{
		"text": text,
		"size": "5",
	})
	if err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", text, err)
	}

	places := make([]routing.Place, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		if len(f.Geometry.Coordinates) != 2 {
			continue
		}
		places = append(places, routing.Place{
			Label: f.Properties.Label,
			Position: routing.Coordinates{
				Lng: f.Geometry.Coordinates[0],
				Lat: f.Geometry.Coordinates[1],
			},
		})
	}
	return places, nil
}

// geocode resolves one address to coordinates (/geocode/search).
func (c *Client) geocode(ctx context.Context, address string) (routing.Coordinates, error) {
	norm := normalize(address)

	decoded, err := c.geocodeGet(ctx, "/geocode/search", map[string]string{
		"text": norm,
		"size": "1",
	})
	if err != nil {
		return routing.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}

	if len(decoded.Features) == 0 {
		return routing.Coordinates{}, fmt.Errorf("no geocode results for %q", address)
	}
	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return routing.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return routing.Coordinates{Lng: coords[0], Lat: coords[1]}, nil
}

// ReverseGeocode resolves a position to its formatted address
// (/geocode/reverse).
func (c *Client) ReverseGeocode(ctx context.Context, pos routing.Coordinates) (string, error) {
	decoded, err := c.geocodeGet(ctx, "/geocode/reverse", map[string]string{
		"point.lon": strconv.FormatFloat(pos.Lng, 'f', -1, 64),
		"point.lat": strconv.FormatFloat(pos.Lat, 'f', -1, 64),
		"size":      "1",
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode (%f, %f): %w", pos.Lat, pos.Lng, err)
	}

	if len(decoded.Features) == 0 {
		return "", fmt.Errorf("no address found at (%f, %f)", pos.Lat, pos.Lng)
	}
	return decoded.Features[0].Properties.Label, nil
}
