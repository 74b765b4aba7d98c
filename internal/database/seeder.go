package database

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/OpenRelief/relief/internal/catalog"
	"gorm.io/gorm"
)

type seedFile struct {
	Vendors  []catalog.Vendor  `json:"vendors"`
	Products []catalog.Product `json:"products"`
}

// SeedCatalog loads demo vendors and products from a JSON file.
// Seeding is idempotent: it is skipped entirely when the catalog
// already contains rows, so restarts never duplicate records.
func SeedCatalog(db *gorm.DB, path string) error {
	if path == "" {
		return nil
	}

	var count int64
	if err := db.Model(&catalog.Vendor{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count vendors: %w", err)
	}
	if count > 0 {
		slog.Info("catalog already seeded, skipping", "vendors", count)
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("no catalog seed file found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("failed to read seed file %q: %w", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file %q: %w", path, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if len(seed.Vendors) > 0 {
			if err := tx.Create(&seed.Vendors).Error; err != nil {
				return fmt.Errorf("failed to seed vendors: %w", err)
			}
		}
		if len(seed.Products) > 0 {
			if err := tx.Create(&seed.Products).Error; err != nil {
				return fmt.Errorf("failed to seed products: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("catalog seeded",
		"vendors", len(seed.Vendors),
		"products", len(seed.Products),
	)
	return nil
}
