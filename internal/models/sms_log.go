package models

import (
	"time"

	"github.com/google/uuid"
)

// SMS log statuses.
const (
	SMSLogStatusSent   = "sent"
	SMSLogStatusFailed = "failed"
)

// SMSLog records one dispatch attempt against the gateway. Attempt
// bookkeeping only; delivery receipts are not tracked.
type SMSLog struct {
	ID             uuid.UUID  `json:"id"`
	RegistrationID *uuid.UUID `json:"registration_id,omitempty"`
	Recipient      string     `json:"recipient"`
	Body           string     `json:"body"`
	MessageType    string     `json:"message_type"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
