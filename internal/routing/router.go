package routing

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/OpenRelief/relief/utils"
)

// Router exposes the route-planning HTTP surface: planning sessions with
// their waypoint lifecycle, route computation, the route log, and
// position lookup.
type Router struct {
	planner       *Planner
	sessions      *SessionStore
	logs          *LogRepository
	autocompleter Autocompleter
	geocoder      Geocoder
}

func NewRouter(planner *Planner, sessions *SessionStore, logs *LogRepository, ac Autocompleter, gc Geocoder) *Router {
	return &Router{
		planner:       planner,
		sessions:      sessions,
		logs:          logs,
		autocompleter: ac,
		geocoder:      gc,
	}
}

// HandleCreateSession handles POST /api/route-sessions.
func (rt *Router) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := rt.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// HandleAddWaypoint handles POST /api/route-sessions/{sessionID}/waypoints.
// The new waypoint's input is bound to the suggestion source exactly
// once; repeating the call for the same waypoint never adds a second
// binding.
func (rt *Router) HandleAddWaypoint(w http.ResponseWriter, r *http.Request) {
	list, ok := rt.sessionFromPath(w, r)
	if !ok {
		return
	}

	wp := list.Add()
	if _, err := list.Bind(wp.ID, rt.autocompleter); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, wp)
}

// HandleSuggestWaypoint handles
// GET /api/route-sessions/{sessionID}/waypoints/{waypointID}/suggestions.
func (rt *Router) HandleSuggestWaypoint(w http.ResponseWriter, r *http.Request) {
	list, ok := rt.sessionFromPath(w, r)
	if !ok {
		return
	}
	waypointID, err := pathUUID(r, "waypointID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	places, err := list.Suggest(r.Context(), waypointID, r.URL.Query().Get("text"))
	if err != nil {
		if errors.Is(err, ErrWaypointNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		slog.Error("autocomplete failed", "waypoint_id", waypointID, "error", err)
		http.Error(w, "autocomplete failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

// HandleResolveWaypoint handles
// PUT /api/route-sessions/{sessionID}/waypoints/{waypointID}. The chosen
// place is stored on that waypoint only, and the response carries the
// viewport recentred on the resolved position.
func (rt *Router) HandleResolveWaypoint(w http.ResponseWriter, r *http.Request) {
	list, ok := rt.sessionFromPath(w, r)
	if !ok {
		return
	}
	waypointID, err := pathUUID(r, "waypointID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var place Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := list.Resolve(waypointID, place); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"waypoints": list.Waypoints(),
		"viewport":  RecentreOn(place.Position),
	})
}

// HandleRemoveWaypoint handles
// DELETE /api/route-sessions/{sessionID}/waypoints/{waypointID}.
func (rt *Router) HandleRemoveWaypoint(w http.ResponseWriter, r *http.Request) {
	list, ok := rt.sessionFromPath(w, r)
	if !ok {
		return
	}
	waypointID, err := pathUUID(r, "waypointID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := list.Remove(waypointID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"waypoints": list.Waypoints()})
}

type planRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// HandlePlanRoute handles POST /api/route-sessions/{sessionID}/plan: the
// session's non-empty waypoint addresses are routed between origin and
// destination and the summary is returned and forwarded to the route
// log.
func (rt *Router) HandlePlanRoute(w http.ResponseWriter, r *http.Request) {
	list, ok := rt.sessionFromPath(w, r)
	if !ok {
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	summary, err := rt.planner.Plan(r.Context(), req.Origin, req.Destination, list.Addresses())
	if err != nil {
		if errors.Is(err, ErrMissingEndpoints) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "route computation failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleCreateRouteLog handles POST /routes: store a summary record
// submitted directly by a client.
func (rt *Router) HandleCreateRouteLog(w http.ResponseWriter, r *http.Request) {
	var rl RouteLog
	if err := json.NewDecoder(r.Body).Decode(&rl); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if rl.Origin == "" || rl.Destination == "" {
		http.Error(w, "origin and destination are required", http.StatusUnprocessableEntity)
		return
	}

	if err := rt.logs.Create(r.Context(), &rl); err != nil {
		http.Error(w, "failed to store route log", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, rl)
}

// HandleListRouteLogs handles GET /routes.
func (rt *Router) HandleListRouteLogs(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logs, err := rt.logs.List(r.Context(), page.Offset, page.Limit)
	if err != nil {
		http.Error(w, "failed to list route logs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

type positionRequest struct {
	Position Coordinates `json:"position"`
}

// HandleLocate handles POST /api/position: recentre on the reported
// position and attach its formatted address when reverse geocoding
// succeeds. A geocoding failure degrades to a response without the
// address.
func (rt *Router) HandleLocate(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	payload := map[string]any{
		"position": req.Position,
		"viewport": RecentreOn(req.Position),
	}

	address, err := rt.geocoder.ReverseGeocode(r.Context(), req.Position)
	if err != nil {
		slog.Error("reverse geocoding failed",
			"lat", req.Position.Lat,
			"lng", req.Position.Lng,
			"error", err)
	} else {
		payload["address"] = address
	}
	writeJSON(w, http.StatusOK, payload)
}

func (rt *Router) sessionFromPath(w http.ResponseWriter, r *http.Request) (*WaypointList, bool) {
	sessionID, err := pathUUID(r, "sessionID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	list, err := rt.sessions.Get(sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return list, true
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing %s in path", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %v", name, err)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}
}
