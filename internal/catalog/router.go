package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/OpenRelief/relief/utils"
)

// Router serves the catalog endpoints the mission wizard preloads:
// GET /vendors/ and GET /products/ return flat arrays used for public
// identifier resolution, plus admin-gated creation endpoints.
type Router struct {
	repo     *Repository
	resolver *Resolver
}

func NewRouter(repo *Repository, resolver *Resolver) *Router {
	return &Router{repo: repo, resolver: resolver}
}

// HandleListVendors handles GET /vendors/ requests
// Optional query filters: offset, limit
func (rt *Router) HandleListVendors(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vendors, err := rt.repo.ListVendors(r.Context(), page)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list vendors: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, vendors)
}

// HandleListProducts handles GET /products/ requests
// Optional query filters: offset, limit
func (rt *Router) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	products, err := rt.repo.ListProducts(r.Context(), page)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list products: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// HandleCreateVendor handles POST /vendors/ requests
func (rt *Router) HandleCreateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := rt.repo.CreateVendor(r.Context(), &vendor); err != nil {
		http.Error(w, fmt.Sprintf("failed to create vendor: %v", err), http.StatusInternalServerError)
		return
	}
	rt.resolver.AddVendor(&vendor)

	writeJSON(w, http.StatusCreated, vendor)
}

// HandleCreateProduct handles POST /products/ requests
func (rt *Router) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var product Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := rt.repo.CreateProduct(r.Context(), &product); err != nil {
		http.Error(w, fmt.Sprintf("failed to create product: %v", err), http.StatusInternalServerError)
		return
	}
	rt.resolver.AddProduct(&product)

	writeJSON(w, http.StatusCreated, product)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}
}
