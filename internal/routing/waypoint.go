package routing

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrWaypointNotFound is returned when a waypoint identifier does not
// exist in the list.
var ErrWaypointNotFound = errors.New("waypoint not found")

// Waypoint is one intermediate stop between origin and destination. A
// freshly added waypoint has empty address text and no resolved position.
type Waypoint struct {
	ID       uuid.UUID    `json:"id"`
	Address  string       `json:"address"`
	Position *Coordinates `json:"position,omitempty"`
}

// WaypointList holds the ordered waypoints of one planning session and
// the suggestion bindings attached to their inputs. Binding is idempotent:
// a waypoint gets at most one suggestion source no matter how often the
// input is re-rendered. Safe for concurrent use.
type WaypointList struct {
	mu        sync.RWMutex
	waypoints []*Waypoint
	bindings  map[uuid.UUID]Autocompleter
}

func NewWaypointList() *WaypointList {
	return &WaypointList{bindings: map[uuid.UUID]Autocompleter{}}
}

// Add appends a new empty waypoint and returns it.
func (l *WaypointList) Add() *Waypoint {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := &Waypoint{ID: uuid.New()}
	l.waypoints = append(l.waypoints, w)
	return w
}

// Bind attaches the suggestion source to the given waypoint's input.
// Returns true when a new binding was created, false when the waypoint
// was already bound; the existing binding is never replaced.
func (l *WaypointList) Bind(id uuid.UUID, ac Autocompleter) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.find(id) == nil {
		return false, ErrWaypointNotFound
	}
	if _, bound := l.bindings[id]; bound {
		return false, nil
	}
	l.bindings[id] = ac
	return true, nil
}

// Suggest queries the waypoint's bound suggestion source.
func (l *WaypointList) Suggest(ctx context.Context, id uuid.UUID, text string) ([]Place, error) {
	l.mu.RLock()
	ac, bound := l.bindings[id]
	l.mu.RUnlock()

	if !bound {
		return nil, ErrWaypointNotFound
	}
	return ac.Autocomplete(ctx, text)
}

// Resolve stores the chosen place on the waypoint with the matching
// identifier. Other waypoints are untouched.
func (l *WaypointList) Resolve(id uuid.UUID, place Place) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.find(id)
	if w == nil {
		return ErrWaypointNotFound
	}
	pos := place.Position
	w.Address = place.Label
	w.Position = &pos
	return nil
}

// Remove deletes the waypoint with the given identifier. The relative
// order of the remaining waypoints is preserved.
func (l *WaypointList) Remove(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, w := range l.waypoints {
		if w.ID == id {
			l.waypoints = append(l.waypoints[:i], l.waypoints[i+1:]...)
			delete(l.bindings, id)
			return nil
		}
	}
	return ErrWaypointNotFound
}

// Waypoints returns a snapshot of the list in order.
func (l *WaypointList) Waypoints() []Waypoint {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Waypoint, 0, len(l.waypoints))
	for _, w := range l.waypoints {
		out = append(out, *w)
	}
	return out
}

// Addresses returns the non-empty waypoint addresses in list order, the
// form a directions request consumes.
func (l *WaypointList) Addresses() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.waypoints))
	for _, w := range l.waypoints {
		if w.Address != "" {
			out = append(out, w.Address)
		}
	}
	return out
}

func (l *WaypointList) find(id uuid.UUID) *Waypoint {
	for _, w := range l.waypoints {
		if w.ID == id {
			return w
		}
	}
	return nil
}
