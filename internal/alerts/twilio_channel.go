package alerts

import (
	"context"
	"fmt"
	"html"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"homesafe/safety-portal-backend/internal/config"
)

// TwilioChannel sends SMS and places voice calls through Twilio
type TwilioChannel struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioChannel creates a Twilio channel from alert configuration
func NewTwilioChannel(cfg config.AlertsConfig) *TwilioChannel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &TwilioChannel{client: client, from: cfg.TwilioFromNumber}
}

// SendSMS delivers one text message
func (t *TwilioChannel) SendSMS(ctx context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio sms failed: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// Call places an automated voice call that reads the message aloud
func (t *TwilioChannel) Call(ctx context.Context, to, message string) (string, error) {
	params := &twilioApi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetTwiml(fmt.Sprintf(`<Response><Say voice="alice">%s</Say></Response>`, html.EscapeString(message)))

	resp, err := t.client.Api.CreateCall(params)
	if err != nil {
		return "", fmt.Errorf("twilio call failed: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
