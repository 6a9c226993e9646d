package alerts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"homesafe/safety-portal-backend/internal/auth"
	"homesafe/safety-portal-backend/internal/contacts"
	"homesafe/safety-portal-backend/internal/notifications/websocket"
)

// ErrNoContacts means the user has no emergency contacts to alert
var ErrNoContacts = errors.New("no emergency contacts configured - add at least one before relying on alerts")

// Service dispatches emergency alerts: SMS to every contact, a voice call
// to the primary contact, and email where an address is on file.
type Service struct {
	contacts  contacts.Repository
	users     *auth.Service
	sms       SMSSender
	caller    Caller
	email     EmailSender
	wsManager *websocket.Manager
	logger    *zap.Logger
}

// NewService creates the alert dispatch service. caller and email may be
// nil when the deployment has no voice or email channel.
func NewService(contactRepo contacts.Repository, users *auth.Service, sms SMSSender, caller Caller, email EmailSender, wsManager *websocket.Manager, logger *zap.Logger) *Service {
	return &Service{
		contacts:  contactRepo,
		users:     users,
		sms:       sms,
		caller:    caller,
		email:     email,
		wsManager: wsManager,
		logger:    logger,
	}
}

// Dispatch sends the alert to all of the user's emergency contacts.
// Individual channel failures are collected, not fatal: one unreachable
// contact must never stop the rest from being warned.
func (s *Service) Dispatch(ctx context.Context, userID uuid.UUID, req DispatchRequest) (*DispatchResult, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	contactList, err := s.contacts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	if len(contactList) == 0 {
		return nil, ErrNoContacts
	}

	body := smsBody(user.FullName, user.Phone, req)

	// SMS fan-out; contacts are independent, send concurrently
	smsResults := make([]ChannelResult, len(contactList))
	var wg sync.WaitGroup
	for i, contact := range contactList {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := ChannelResult{Contact: contact.Name, Channel: "sms"}
			msgID, err := s.sms.SendSMS(ctx, contact.Phone, body)
			if err != nil {
				s.logger.Error("alert sms failed",
					zap.String("contact", contact.Name), zap.Error(err))
				result.Error = err.Error()
			} else {
				result.Success = true
				result.MessageID = msgID
			}
			smsResults[i] = result
		}()
	}
	wg.Wait()

	// Voice call to the primary contact (first in the list when none is
	// marked primary; the repository orders primary first)
	var callResult *ChannelResult
	if s.caller != nil {
		primary := contactList[0]
		result := ChannelResult{Contact: primary.Name, Channel: "call"}
		callID, err := s.caller.Call(ctx, primary.Phone, callMessage(user.FullName))
		if err != nil {
			s.logger.Error("alert call failed",
				zap.String("contact", primary.Name), zap.Error(err))
			result.Error = err.Error()
		} else {
			result.Success = true
			result.MessageID = callID
		}
		callResult = &result
	}

	// Email contacts that have an address
	var emailResults []ChannelResult
	if s.email != nil {
		for _, contact := range contactList {
			if contact.Email == "" {
				continue
			}
			result := ChannelResult{Contact: contact.Name, Channel: "email"}
			msgID, err := s.email.SendEmail(ctx, contact.Email,
				fmt.Sprintf("EMERGENCY ALERT from %s", user.FullName), body)
			if err != nil {
				s.logger.Error("alert email failed",
					zap.String("contact", contact.Name), zap.Error(err))
				result.Error = err.Error()
			} else {
				result.Success = true
				result.MessageID = msgID
			}
			emailResults = append(emailResults, result)
		}
	}

	result := &DispatchResult{
		Success:    true,
		Message:    fmt.Sprintf("Alert sent to %d contact(s)", len(contactList)),
		SMSResults: smsResults,
		CallResult: callResult,
		Emails:     emailResults,
	}

	if s.wsManager != nil {
		s.wsManager.SendToUser(userID, websocket.Message{
			Type: websocket.EventAlertDispatched,
			Data: result,
		})
	}

	return result, nil
}

func smsBody(userName, userPhone string, req DispatchRequest) string {
	locationLink := "Location unavailable"
	if req.Latitude != nil && req.Longitude != nil {
		locationLink = fmt.Sprintf("https://www.google.com/maps?q=%f,%f", *req.Latitude, *req.Longitude)
	}
	callBack := userPhone
	if callBack == "" {
		callBack = "No phone provided"
	}

	body := fmt.Sprintf("EMERGENCY ALERT from %s!\n\nThey need help NOW!\n\nLocation: %s\n\nCall them: %s",
		userName, locationLink, callBack)
	if req.Note != "" {
		body += "\n\nNote: " + req.Note
	}
	return body + "\n\nThis is an automated HomeSafe emergency alert."
}

func callMessage(userName string) string {
	return fmt.Sprintf("Emergency alert! %s has triggered an emergency alert and needs help immediately. "+
		"Please check your messages for their location and call them back right away.", userName)
}
