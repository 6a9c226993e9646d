package datesession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSessionNotFound is returned when no session matches the lookup
var ErrSessionNotFound = errors.New("date session not found")

// Repository persists date sessions
type Repository interface {
	Create(ctx context.Context, session *DateSession) error
	Get(ctx context.Context, userID, id uuid.UUID) (*DateSession, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*DateSession, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]DateSession, error)
	Update(ctx context.Context, session *DateSession) error
	ListOverdue(ctx context.Context, before time.Time) ([]DateSession, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed session repository and migrates its table
func NewRepository(db *gorm.DB) (Repository, error) {
	if err := db.AutoMigrate(&DateSession{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &gormRepository{db: db}, nil
}

func (r *gormRepository) Create(ctx context.Context, session *DateSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *gormRepository) Get(ctx context.Context, userID, id uuid.UUID) (*DateSession, error) {
	var session DateSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (r *gormRepository) GetActive(ctx context.Context, userID uuid.UUID) (*DateSession, error) {
	var session DateSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, StatusActive).
		Order("created_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return &session, nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]DateSession, error) {
	var sessions []DateSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func (r *gormRepository) Update(ctx context.Context, session *DateSession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (r *gormRepository) ListOverdue(ctx context.Context, before time.Time) ([]DateSession, error) {
	var sessions []DateSession
	err := r.db.WithContext(ctx).
		Where("status = ? AND expected_end_at < ? AND checked_in_at IS NULL", StatusActive, before).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue sessions: %w", err)
	}
	return sessions, nil
}
