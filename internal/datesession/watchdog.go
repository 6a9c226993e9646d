package datesession

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"homesafe/safety-portal-backend/internal/alerts"
	"homesafe/safety-portal-backend/internal/notifications/websocket"
)

// overdueGrace is how far past the expected end a session may run before
// the watchdog treats the silence as a problem.
const overdueGrace = 15 * time.Minute

// Watchdog periodically sweeps for active sessions past their expected end
// with no check-in, and alerts the user's emergency contacts.
type Watchdog struct {
	repo      Repository
	alerts    *alerts.Service
	wsManager *websocket.Manager
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewWatchdog creates the overdue-session watchdog
func NewWatchdog(repo Repository, alertService *alerts.Service, wsManager *websocket.Manager, logger *zap.Logger) *Watchdog {
	return &Watchdog{
		repo:      repo,
		alerts:    alertService,
		wsManager: wsManager,
		cron:      cron.New(),
		logger:    logger,
	}
}

// Start schedules the sweep every minute
func (w *Watchdog) Start() error {
	if _, err := w.cron.AddFunc("* * * * *", w.sweep); err != nil {
		return fmt.Errorf("failed to schedule watchdog: %w", err)
	}
	w.cron.Start()
	w.logger.Info("date session watchdog started")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (w *Watchdog) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

// sweep alerts contacts for every overdue session. Each session is handled
// independently; one failed dispatch must not block the rest.
func (w *Watchdog) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-overdueGrace)
	sessions, err := w.repo.ListOverdue(ctx, cutoff)
	if err != nil {
		w.logger.Error("watchdog sweep failed", zap.Error(err))
		return
	}

	for _, session := range sessions {
		logger := w.logger.With(
			zap.String("session_id", session.ID.String()),
			zap.String("user_id", session.UserID.String()))

		note := fmt.Sprintf("No check-in after their date with %s", session.DateName)
		if session.VenueName != "" {
			note = fmt.Sprintf("No check-in after their date with %s at %s", session.DateName, session.VenueName)
		}

		if _, err := w.alerts.Dispatch(ctx, session.UserID, alerts.DispatchRequest{Note: note}); err != nil {
			logger.Error("watchdog alert dispatch failed", zap.Error(err))
			continue
		}

		session.Status = StatusAlerted
		if err := w.repo.Update(ctx, &session); err != nil {
			logger.Error("failed to mark session alerted", zap.Error(err))
			continue
		}

		if w.wsManager != nil {
			w.wsManager.SendToUser(session.UserID, websocket.Message{
				Type: websocket.EventSessionOverdue,
				Data: session,
			})
		}
		logger.Info("overdue session alerted")
	}
}
