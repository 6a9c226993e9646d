package contacts

import (
	"context"

	"github.com/google/uuid"
)

// Service provides emergency contact management
type Service struct {
	repo Repository
}

// NewService creates the contacts service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a contact. Marking it primary demotes the current primary, so
// there is at most one per user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req ContactRequest) (*EmergencyContact, error) {
	if req.IsPrimary {
		if err := s.repo.ClearPrimary(ctx, userID); err != nil {
			return nil, err
		}
	}

	contact := &EmergencyContact{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Relationship: req.Relationship,
		IsPrimary:    req.IsPrimary,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// List returns the user's contacts, primary first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]EmergencyContact, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update modifies an existing contact
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req ContactRequest) (*EmergencyContact, error) {
	contact, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.IsPrimary && !contact.IsPrimary {
		if err := s.repo.ClearPrimary(ctx, userID); err != nil {
			return nil, err
		}
	}

	contact.Name = req.Name
	contact.Phone = req.Phone
	contact.Email = req.Email
	contact.Relationship = req.Relationship
	contact.IsPrimary = req.IsPrimary

	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes a contact
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
