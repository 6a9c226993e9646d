package datesession

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"homesafe/safety-portal-backend/internal/notifications/websocket"
)

// ErrActiveSessionExists means the user already has a date in progress
var ErrActiveSessionExists = errors.New("a date session is already active - end it before starting another")

// Service manages the date-mode lifecycle
type Service struct {
	repo      Repository
	wsManager *websocket.Manager
}

// NewService creates the date session service
func NewService(repo Repository, wsManager *websocket.Manager) *Service {
	return &Service{repo: repo, wsManager: wsManager}
}

// Start begins tracking a date. Only one active session per user.
func (s *Service) Start(ctx context.Context, userID uuid.UUID, req StartRequest) (*DateSession, error) {
	if _, err := s.repo.GetActive(ctx, userID); err == nil {
		return nil, ErrActiveSessionExists
	} else if !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	excuse := req.ExcuseTemplate
	if _, ok := ExcuseTemplates[excuse]; !ok && excuse != "custom" {
		excuse = "family_emergency"
	}

	session := &DateSession{
		ID:                 uuid.New(),
		UserID:             userID,
		DateName:           req.DateName,
		VenueName:          req.VenueName,
		VenueAddress:       req.VenueAddress,
		ScheduledAt:        req.ScheduledAt,
		ExpectedEndAt:      req.ExpectedEndAt,
		EmergencyContactID: req.EmergencyContactID,
		ExcuseTemplate:     excuse,
		Status:             StatusActive,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.notify(userID, websocket.EventSessionStarted, session)
	return session, nil
}

// CheckIn marks the user safe; the watchdog leaves checked-in sessions alone
func (s *Service) CheckIn(ctx context.Context, userID, id uuid.UUID) (*DateSession, error) {
	session, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.CheckedInAt = &now
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.notify(userID, websocket.EventSessionCheckedIn, session)
	return session, nil
}

// End completes a session
func (s *Service) End(ctx context.Context, userID, id uuid.UUID) (*DateSession, error) {
	session, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	session.Status = StatusCompleted
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.notify(userID, websocket.EventSessionEnded, session)
	return session, nil
}

// Active returns the user's session in progress, if any
func (s *Service) Active(ctx context.Context, userID uuid.UUID) (*DateSession, error) {
	return s.repo.GetActive(ctx, userID)
}

// List returns the user's recent sessions
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]DateSession, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) notify(userID uuid.UUID, event string, session *DateSession) {
	if s.wsManager != nil {
		s.wsManager.SendToUser(userID, websocket.Message{Type: event, Data: session})
	}
}
