package alerts

import "context"

// SMSSender delivers one text message and returns the provider message ID
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
}

// Caller places one automated voice call and returns the provider call ID
type Caller interface {
	Call(ctx context.Context, to, message string) (string, error)
}

// EmailSender delivers one email and returns the provider message ID
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}
