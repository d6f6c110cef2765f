package events

import (
	"time"

	"github.com/spec-kit/hustle-village/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSignupCodeIssued  EventType = "signup_code_issued"
	EventUserVerified      EventType = "user_verified"
	EventServiceCreated    EventType = "service_created"
	EventServiceUpdated    EventType = "service_updated"
	EventServiceToggled    EventType = "service_toggled"
	EventDeletionRequested EventType = "deletion_requested"
	EventDeletionResolved  EventType = "deletion_resolved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SignupCodeIssuedPayload carries a passcode to the delivery stub. It never
// appears in responses or error payloads.
type SignupCodeIssuedPayload struct {
	Email string `json:"email"`
	Code  string `json:"-"`
}

// UserVerifiedPayload payload.
type UserVerifiedPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// ServiceCreatedPayload payload.
type ServiceCreatedPayload struct {
	ServiceID string                 `json:"service_id"`
	Title     string                 `json:"title"`
	Category  domain.ServiceCategory `json:"category"`
}

// ServiceUpdatedPayload payload.
type ServiceUpdatedPayload struct {
	ServiceID string `json:"service_id"`
	Title     string `json:"title"`
}

// ServiceToggledPayload payload.
type ServiceToggledPayload struct {
	ServiceID string `json:"service_id"`
	IsActive  bool   `json:"is_active"`
}

// DeletionRequestedPayload payload.
type DeletionRequestedPayload struct {
	RequestID string  `json:"request_id"`
	ServiceID string  `json:"service_id"`
	Reason    *string `json:"reason,omitempty"`
}

// DeletionResolvedPayload payload.
type DeletionResolvedPayload struct {
	RequestID string                     `json:"request_id"`
	ServiceID string                     `json:"service_id"`
	Status    domain.DeleteRequestStatus `json:"status"`
	AdminID   string                     `json:"admin_id"`
}
