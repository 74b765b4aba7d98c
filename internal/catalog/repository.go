package catalog

import (
	"context"
	"fmt"

	"github.com/OpenRelief/relief/utils"
	"gorm.io/gorm"
)

// Repository provides persistence for the vendor and product catalog.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListVendors returns a page of vendors ordered by name.
func (r *Repository) ListVendors(ctx context.Context, page utils.Page) ([]Vendor, error) {
	var vendors []Vendor
	err := r.db.WithContext(ctx).
		Order("name asc").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&vendors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

// ListProducts returns a page of products ordered by name.
func (r *Repository) ListProducts(ctx context.Context, page utils.Page) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).
		Order("name asc").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CreateVendor persists a new vendor and returns it with identifiers assigned.
func (r *Repository) CreateVendor(ctx context.Context, vendor *Vendor) error {
	if vendor == nil {
		return fmt.Errorf("vendor cannot be nil")
	}
	if vendor.Name == "" {
		return fmt.Errorf("vendor name is required")
	}

	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

// CreateProduct persists a new product and returns it with identifiers assigned.
func (r *Repository) CreateProduct(ctx context.Context, product *Product) error {
	if product == nil {
		return fmt.Errorf("product cannot be nil")
	}
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// AllVendors loads the complete vendor list for resolver index builds.
func (r *Repository) AllVendors(ctx context.Context) ([]Vendor, error) {
	var vendors []Vendor
	if err := r.db.WithContext(ctx).Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to load vendors: %w", err)
	}
	return vendors, nil
}

// AllProducts loads the complete product list for resolver index builds.
func (r *Repository) AllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}
