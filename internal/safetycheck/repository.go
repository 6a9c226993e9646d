package safetycheck

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists completed check reports
type Repository interface {
	SaveCheck(ctx context.Context, check *StoredCheck) error
	ListChecks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]StoredCheck, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed repository and migrates its table
func NewRepository(db *gorm.DB) (Repository, error) {
	if err := db.AutoMigrate(&StoredCheck{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &gormRepository{db: db}, nil
}

func (r *gormRepository) SaveCheck(ctx context.Context, check *StoredCheck) error {
	if err := r.db.WithContext(ctx).Create(check).Error; err != nil {
		return fmt.Errorf("failed to save check: %w", err)
	}
	return nil
}

func (r *gormRepository) ListChecks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]StoredCheck, error) {
	var checks []StoredCheck
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)

	if err := query.Find(&checks).Error; err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	return checks, nil
}
