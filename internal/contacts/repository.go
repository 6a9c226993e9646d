package contacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrContactNotFound is returned when no contact matches the lookup
var ErrContactNotFound = errors.New("contact not found")

// Repository persists emergency contacts
type Repository interface {
	Create(ctx context.Context, contact *EmergencyContact) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]EmergencyContact, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*EmergencyContact, error)
	Update(ctx context.Context, contact *EmergencyContact) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ClearPrimary(ctx context.Context, userID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed contact repository and migrates its table
func NewRepository(db *gorm.DB) (Repository, error) {
	if err := db.AutoMigrate(&EmergencyContact{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &gormRepository{db: db}, nil
}

func (r *gormRepository) Create(ctx context.Context, contact *EmergencyContact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]EmergencyContact, error) {
	var list []EmergencyContact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC, created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return list, nil
}

func (r *gormRepository) Get(ctx context.Context, userID, id uuid.UUID) (*EmergencyContact, error) {
	var contact EmergencyContact
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

func (r *gormRepository) Update(ctx context.Context, contact *EmergencyContact) error {
	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&EmergencyContact{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *gormRepository) ClearPrimary(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&EmergencyContact{}).
		Where("user_id = ? AND is_primary = ?", userID, true).
		Update("is_primary", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear primary contact: %w", err)
	}
	return nil
}
