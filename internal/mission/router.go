package mission

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Router serves the mission resource endpoints and the two-stage
// provisioning wizard built on top of them.
type Router struct {
	repo     Repository
	resolver Resolver
}

func NewRouter(repo Repository, resolver Resolver) *Router {
	return &Router{repo: repo, resolver: resolver}
}

// HandleCreateMission handles POST /api/missions/ requests
func (rt *Router) HandleCreateMission(w http.ResponseWriter, r *http.Request) {
	var form ProvisionForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if verr := ValidateDetails(&form); verr != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"stage":  verr.Stage,
			"fields": verr.Fields,
		})
		return
	}

	m := &Mission{
		Title:                 form.Title,
		Type:                  form.Type,
		NumberOfBeneficiaries: form.NumberOfBeneficiaries,
		Description:           form.Description,
		DeptLocation:          form.DeptLocation,
		DestinationLocation:   form.DestinationLocation,
		StartDate:             form.StartDate,
		EndDate:               form.EndDate,
		Status:                MissionStatusPending,
	}
	if err := rt.repo.CreateMission(r.Context(), m); err != nil {
		http.Error(w, fmt.Sprintf("failed to create mission: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

// HandleGetMission handles GET /api/missions/{missionID} requests
func (rt *Router) HandleGetMission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "missionID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := rt.repo.GetMission(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMissionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("failed to get mission: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// HandleAssignVendor handles POST /vendor-missions/ requests
func (rt *Router) HandleAssignVendor(w http.ResponseWriter, r *http.Request) {
	var va VendorAssignment
	if err := json.NewDecoder(r.Body).Decode(&va); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// A vendor assignment may only reference a mission that already has a
	// server identifier.
	if _, err := rt.repo.GetMission(r.Context(), va.MissionID); err != nil {
		if errors.Is(err, ErrMissionNotFound) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, fmt.Sprintf("failed to verify mission: %v", err), http.StatusInternalServerError)
		return
	}

	if err := rt.repo.CreateVendorAssignment(r.Context(), &va); err != nil {
		http.Error(w, fmt.Sprintf("failed to create vendor assignment: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, va)
}

// HandleCreateCargo handles POST /cargo/ requests
func (rt *Router) HandleCreateCargo(w http.ResponseWriter, r *http.Request) {
	var c Cargo
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if _, err := rt.repo.GetMission(r.Context(), c.MissionID); err != nil {
		if errors.Is(err, ErrMissionNotFound) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, fmt.Sprintf("failed to verify mission: %v", err), http.StatusInternalServerError)
		return
	}

	if err := rt.repo.CreateCargo(r.Context(), &c); err != nil {
		http.Error(w, fmt.Sprintf("failed to create cargo: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// HandleCreateCargoItem handles POST /cargo-items/ requests
func (rt *Router) HandleCreateCargoItem(w http.ResponseWriter, r *http.Request) {
	var ci CargoItem
	if err := json.NewDecoder(r.Body).Decode(&ci); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// A cargo item may only reference a cargo container that already has a
	// server identifier.
	if _, err := rt.repo.GetCargo(r.Context(), ci.CargoID); err != nil {
		if errors.Is(err, ErrCargoNotFound) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, fmt.Sprintf("failed to verify cargo: %v", err), http.StatusInternalServerError)
		return
	}

	if ci.Quantity <= 0 {
		http.Error(w, "quantity must be positive", http.StatusUnprocessableEntity)
		return
	}

	if err := rt.repo.CreateCargoItem(r.Context(), &ci); err != nil {
		http.Error(w, fmt.Sprintf("failed to create cargo item: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, ci)
}

// HandleProvisionMission handles POST /api/provision/missions requests,
// running stage 1 of the wizard in a single call.
func (rt *Router) HandleProvisionMission(w http.ResponseWriter, r *http.Request) {
	var form ProvisionForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	saga := NewSaga(rt.repo, rt.resolver)
	m, err := saga.SubmitDetails(r.Context(), &form)
	if err != nil {
		rt.writeSagaError(w, m, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"mission": m,
		"stage":   saga.Stage(),
	})
}

// HandleProvisionCargo handles POST /api/provision/missions/{missionID}/cargo
// requests, running stage 2 of the wizard against an existing mission.
func (rt *Router) HandleProvisionCargo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "missionID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var form ProvisionForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	saga, err := Resume(r.Context(), rt.repo, rt.resolver, id)
	if err != nil {
		rt.writeSagaError(w, nil, err)
		return
	}

	cargo, err := saga.SubmitCargo(r.Context(), &form)
	if err != nil {
		rt.writeSagaError(w, nil, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"cargo": cargo,
		"done":  saga.Done(),
	})
}

// writeSagaError maps saga error types to HTTP responses. Partially created
// records are reported, never rolled back.
func (rt *Router) writeSagaError(w http.ResponseWriter, m *Mission, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"stage":  verr.Stage,
			"fields": verr.Fields,
		})
		return
	}

	var redirect *StageRedirectError
	if errors.As(err, &redirect) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"redirect": redirect.Redirect,
			"error":    redirect.Reason,
		})
		return
	}

	var vendorErr *VendorAssignError
	if errors.As(err, &vendorErr) {
		// The mission exists and its identifier is returned so the client
		// can resume; only the vendor step failed.
		writeJSON(w, http.StatusConflict, map[string]any{
			"mission": m,
			"error":   vendorErr.Error(),
		})
		return
	}

	var itemErr *CargoItemError
	if errors.As(err, &itemErr) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"cargo":       itemErr.CargoID,
			"failedIndex": itemErr.Index,
			"error":       itemErr.Error(),
		})
		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s in path", name)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return uint(id), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}
}
