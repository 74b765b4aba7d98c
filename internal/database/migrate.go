package database

import (
	"fmt"

	"github.com/OpenRelief/relief/internal/auth"
	"github.com/OpenRelief/relief/internal/catalog"
	"github.com/OpenRelief/relief/internal/documents"
	"github.com/OpenRelief/relief/internal/mission"
	"github.com/OpenRelief/relief/internal/routing"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is nil")
	}

	err := db.AutoMigrate(
		&auth.User{},
		&catalog.Vendor{},
		&catalog.Product{},
		&mission.Mission{},
		&mission.VendorAssignment{},
		&mission.Cargo{},
		&mission.CargoItem{},
		&routing.RouteLog{},
		&documents.Document{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
