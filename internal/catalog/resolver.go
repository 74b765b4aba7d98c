package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrVendorNotFound is returned when a public vendor identifier has no
	// matching catalog entry.
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrProductNotFound is returned when a public product identifier has no
	// matching catalog entry.
	ErrProductNotFound = errors.New("product not found")
)

// Resolver maps public (UUID) identifiers to numeric server identifiers.
// The index is built once from the loaded catalog and refreshed on writes,
// so creation paths never scan the full list per call.
type Resolver struct {
	mu       sync.RWMutex
	vendors  map[uuid.UUID]uint
	products map[uuid.UUID]uint
}

func NewResolver() *Resolver {
	return &Resolver{
		vendors:  make(map[uuid.UUID]uint),
		products: make(map[uuid.UUID]uint),
	}
}

// Rebuild replaces the index with the given catalog contents.
func (rs *Resolver) Rebuild(vendors []Vendor, products []Product) {
	vendorIdx := make(map[uuid.UUID]uint, len(vendors))
	for _, v := range vendors {
		vendorIdx[v.PublicID] = v.ID
	}

	productIdx := make(map[uuid.UUID]uint, len(products))
	for _, p := range products {
		productIdx[p.PublicID] = p.ID
	}

	rs.mu.Lock()
	rs.vendors = vendorIdx
	rs.products = productIdx
	rs.mu.Unlock()
}

// AddVendor registers a newly created vendor in the index.
func (rs *Resolver) AddVendor(v *Vendor) {
	rs.mu.Lock()
	rs.vendors[v.PublicID] = v.ID
	rs.mu.Unlock()
}

// AddProduct registers a newly created product in the index.
func (rs *Resolver) AddProduct(p *Product) {
	rs.mu.Lock()
	rs.products[p.PublicID] = p.ID
	rs.mu.Unlock()
}

// ResolveVendor returns the numeric identifier for a public vendor identifier.
func (rs *Resolver) ResolveVendor(publicID uuid.UUID) (uint, error) {
	rs.mu.RLock()
	id, ok := rs.vendors[publicID]
	rs.mu.RUnlock()

	if !ok {
		return 0, fmt.Errorf("resolve vendor %s: %w", publicID, ErrVendorNotFound)
	}
	return id, nil
}

// ResolveProduct returns the numeric identifier for a public product identifier.
func (rs *Resolver) ResolveProduct(publicID uuid.UUID) (uint, error) {
	rs.mu.RLock()
	id, ok := rs.products[publicID]
	rs.mu.RUnlock()

	if !ok {
		return 0, fmt.Errorf("resolve product %s: %w", publicID, ErrProductNotFound)
	}
	return id, nil
}

// BuildResolver constructs a resolver indexed over the full catalog.
func BuildResolver(ctx context.Context, repo *Repository) (*Resolver, error) {
	vendors, err := repo.AllVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	products, err := repo.AllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	rs := NewResolver()
	rs.Rebuild(vendors, products)
	return rs, nil
}
