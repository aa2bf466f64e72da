// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the status of an email job in the queue.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names a template pair (html + txt) known to the renderer.
type EmailTemplateType string

const (
	TemplateWeeklySummary EmailTemplateType = "weekly_summary"
)

// DefaultEmailMaxAttempts bounds how often a job is tried before it is failed for good.
const DefaultEmailMaxAttempts = 3

// emailRetryDelays is indexed by the number of attempts already made.
var emailRetryDelays = []time.Duration{time.Minute, 5 * time.Minute}

// EmailJob represents an email in the queue waiting to be sent.
type EmailJob struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a pending job scheduled for immediate delivery.
func NewEmailJob(userID uuid.UUID, templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		UserID:         userID,
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultEmailMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing marks the email job as currently being processed.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery.
func (e *EmailJob) MarkSent(providerID string, at time.Time) {
	e.Status = EmailStatusSent
	e.ResendID = providerID
	e.ProcessedAt = &at
}

// MarkFailed records a failed attempt. Permanent failures and exhausted jobs
// become failed; anything else is rescheduled with a growing delay.
func (e *EmailJob) MarkFailed(err error, permanent bool, at time.Time) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &at
		return
	}

	delay := emailRetryDelays[len(emailRetryDelays)-1]
	if e.Attempts-1 < len(emailRetryDelays) {
		delay = emailRetryDelays[e.Attempts-1]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = at.Add(delay)
}

// IsReadyToProcess reports whether a pending job is due at the given time.
func (e *EmailJob) IsReadyToProcess(at time.Time) bool {
	return e.Status == EmailStatusPending && !at.Before(e.ScheduledAt)
}
