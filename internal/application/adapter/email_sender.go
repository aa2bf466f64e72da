// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
	// Tags are attached to the message for provider-side filtering, e.g. template=weekly_summary.
	Tags map[string]string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send delivers a rendered email.
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}
