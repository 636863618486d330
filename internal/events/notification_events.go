package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of notification events
type EventType string

const (
	// Invitation events, consumed by the email function
	EventInvitationCreated  EventType = "invitation.created"
	EventInvitationAccepted EventType = "invitation.accepted"
	EventInvitationRevoked  EventType = "invitation.revoked"

	// Assessment events
	EventResultCompleted EventType = "result.completed"
)

const (
	eventSource  = "behavioral-assessment"
	eventVersion = "1.0"
)

// NotificationEvent is the base event structure for all notification events
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`

	// PartitionKey orders events of one aggregate; not serialized.
	PartitionKey string `json:"-"`
}

// NewNotificationEvent wraps a payload with id, source and version. key
// groups events that must stay ordered, such as all events of one user.
func NewNotificationEvent(eventType EventType, key string, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:           watermill.NewUUID(),
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		Source:       eventSource,
		Version:      eventVersion,
		Data:         data,
		PartitionKey: key,
	}
}

// Invitation payloads

type InvitationCreatedEvent struct {
	InvitationID uint      `json:"invitation_id"`
	LeaderID     string    `json:"leader_id"`
	LeaderName   string    `json:"leader_name"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type InvitationAcceptedEvent struct {
	InvitationID uint      `json:"invitation_id"`
	LeaderID     string    `json:"leader_id"`
	ClientID     string    `json:"client_id"`
	AcceptedAt   time.Time `json:"accepted_at"`
}

type InvitationRevokedEvent struct {
	InvitationID uint   `json:"invitation_id"`
	LeaderID     string `json:"leader_id"`
	Email        string `json:"email"`
}

// Result payloads

type ResultCompletedEvent struct {
	ResultID    uint      `json:"result_id,omitempty"`
	SessionID   string    `json:"session_id"`
	UserID      string    `json:"user_id"`
	LeaderID    *string   `json:"leader_id,omitempty"`
	Kind        string    `json:"kind"`
	Dominant    string    `json:"dominant"`
	Percentage  float64   `json:"percentage"`
	CompletedAt time.Time `json:"completed_at"`
}
