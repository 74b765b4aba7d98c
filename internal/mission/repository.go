package mission

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrMissionNotFound is returned when a mission identifier does not exist.
var ErrMissionNotFound = errors.New("mission not found")

// Repository is the persistence contract the provisioning saga depends on.
// Each method is one creation call in the saga's sequence; none of them is
// ever compensated after a later step fails.
type Repository interface {
	CreateMission(ctx context.Context, m *Mission) error
	CreateVendorAssignment(ctx context.Context, va *VendorAssignment) error
	CreateCargo(ctx context.Context, c *Cargo) error
	CreateCargoItem(ctx context.Context, ci *CargoItem) error
	GetMission(ctx context.Context, id uint) (*Mission, error)
	GetCargo(ctx context.Context, id uint) (*Cargo, error)
}

// ErrCargoNotFound is returned when a cargo identifier does not exist.
var ErrCargoNotFound = errors.New("cargo not found")

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed mission repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateMission(ctx context.Context, m *Mission) error {
	if m == nil {
		return fmt.Errorf("mission cannot be nil")
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create mission: %w", err)
	}
	return nil
}

func (r *gormRepository) CreateVendorAssignment(ctx context.Context, va *VendorAssignment) error {
	if va == nil {
		return fmt.Errorf("vendor assignment cannot be nil")
	}
	if va.MissionID == 0 {
		return fmt.Errorf("vendor assignment requires a persisted mission")
	}
	if err := r.db.WithContext(ctx).Create(va).Error; err != nil {
		return fmt.Errorf("failed to create vendor assignment: %w", err)
	}
	return nil
}

func (r *gormRepository) CreateCargo(ctx context.Context, c *Cargo) error {
	if c == nil {
		return fmt.Errorf("cargo cannot be nil")
	}
	if c.MissionID == 0 {
		return fmt.Errorf("cargo requires a persisted mission")
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create cargo: %w", err)
	}
	return nil
}

func (r *gormRepository) CreateCargoItem(ctx context.Context, ci *CargoItem) error {
	if ci == nil {
		return fmt.Errorf("cargo item cannot be nil")
	}
	if ci.CargoID == 0 {
		return fmt.Errorf("cargo item requires a persisted cargo container")
	}
	if err := r.db.WithContext(ctx).Create(ci).Error; err != nil {
		return fmt.Errorf("failed to create cargo item: %w", err)
	}
	return nil
}

func (r *gormRepository) GetMission(ctx context.Context, id uint) (*Mission, error) {
	var m Mission
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mission %d: %w", id, ErrMissionNotFound)
		}
		return nil, fmt.Errorf("failed to fetch mission %d: %w", id, result.Error)
	}
	return &m, nil
}

func (r *gormRepository) GetCargo(ctx context.Context, id uint) (*Cargo, error) {
	var c Cargo
	result := r.db.WithContext(ctx).First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cargo %d: %w", id, ErrCargoNotFound)
		}
		return nil, fmt.Errorf("failed to fetch cargo %d: %w", id, result.Error)
	}
	return &c, nil
}
