package routing

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// LogRepository persists and lists route summary records.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Create(ctx context.Context, rl *RouteLog) error {
	if err := r.db.WithContext(ctx).Create(rl).Error; err != nil {
		return fmt.Errorf("create route log: %w", err)
	}
	return nil
}

func (r *LogRepository) List(ctx context.Context, offset, limit int) ([]RouteLog, error) {
	var logs []RouteLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list route logs: %w", err)
	}
	return logs, nil
}
