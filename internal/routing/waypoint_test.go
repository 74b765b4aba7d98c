package routing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// countingAutocompleter counts how many waypoints it was bound to and
// how often it was queried.
type countingAutocompleter struct {
	queries int
}

func (c *countingAutocompleter) Autocomplete(ctx context.Context, text string) ([]Place, error) {
	c.queries++
	return []Place{{Label: text, Position: Coordinates{Lat: 1, Lng: 2}}}, nil
}

func TestAddCreatesEmptyWaypoint(t *testing.T) {
	list := NewWaypointList()

	w := list.Add()

	assert.NotEqual(t, uuid.Nil, w.ID)
	assert.Empty(t, w.Address)
	assert.Nil(t, w.Position)
	assert.Len(t, list.Waypoints(), 1)
}

func TestBindIsIdempotent(t *testing.T) {
	list := NewWaypointList()
	w := list.Add()
	ac := &countingAutocompleter{}

	created, err := list.Bind(w.ID, ac)
	assert.NoError(t, err)
	assert.True(t, created)

	// A re-render triggers a second bind attempt; no second binding is
	// created.
	created, err = list.Bind(w.ID, ac)
	assert.NoError(t, err)
	assert.False(t, created)

	// One query reaches the suggestion source exactly once.
	_, err = list.Suggest(context.Background(), w.ID, "harbor")
	assert.NoError(t, err)
	assert.Equal(t, 1, ac.queries)
}

func TestBindUnknownWaypoint(t *testing.T) {
	list := NewWaypointList()

	_, err := list.Bind(uuid.New(), &countingAutocompleter{})
	assert.ErrorIs(t, err, ErrWaypointNotFound)
}

func TestResolveTouchesOnlyMatchingWaypoint(t *testing.T) {
	list := NewWaypointList()
	first := list.Add()
	second := list.Add()

	err := list.Resolve(second.ID, Place{
		Label:    "Central Depot",
		Position: Coordinates{Lat: 6.9271, Lng: 79.8612},
	})
	assert.NoError(t, err)

	waypoints := list.Waypoints()
	assert.Equal(t, first.ID, waypoints[0].ID)
	assert.Nil(t, waypoints[0].Position)
	assert.Empty(t, waypoints[0].Address)

	assert.Equal(t, "Central Depot", waypoints[1].Address)
	assert.NotNil(t, waypoints[1].Position)
	assert.Equal(t, 6.9271, waypoints[1].Position.Lat)
}

func TestRemovePreservesOthers(t *testing.T) {
	list := NewWaypointList()
	a := list.Add()
	b := list.Add()
	c := list.Add()

	assert.NoError(t, list.Resolve(a.ID, Place{Label: "A", Position: Coordinates{Lat: 1}}))
	assert.NoError(t, list.Resolve(c.ID, Place{Label: "C", Position: Coordinates{Lat: 3}}))

	assert.NoError(t, list.Remove(b.ID))

	waypoints := list.Waypoints()
	assert.Len(t, waypoints, 2)
	assert.Equal(t, a.ID, waypoints[0].ID)
	assert.Equal(t, c.ID, waypoints[1].ID)
	assert.Equal(t, 1.0, waypoints[0].Position.Lat)
	assert.Equal(t, 3.0, waypoints[1].Position.Lat)

	assert.ErrorIs(t, list.Remove(b.ID), ErrWaypointNotFound)
}

func TestAddressesSkipsUnresolved(t *testing.T) {
	list := NewWaypointList()
	list.Add()
	w := list.Add()
	assert.NoError(t, list.Resolve(w.ID, Place{Label: "Dock 4", Position: Coordinates{}}))

	assert.Equal(t, []string{"Dock 4"}, list.Addresses())
}
