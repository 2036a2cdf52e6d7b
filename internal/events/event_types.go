package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAuthenticated        EventType = "authenticated"
	EventAuthenticationFailed EventType = "authentication_failed"
	EventAccessDenied         EventType = "access_denied"
)

// Event is an access audit record emitted by the gateway.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	AccountID  string      `json:"account_id,omitempty"`
	Role       domain.Role `json:"role,omitempty"`
	Code       string      `json:"code,omitempty"`
	Method     string      `json:"method"`
	Path       string      `json:"path"`
	RequestID  string      `json:"request_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewEvent stamps an event with a fresh id and timestamp.
func NewEvent(eventType EventType) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}
