package models

import (
	"time"

	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation is a leader's request for a client to join them.
type Invitation struct {
	ID       uint             `json:"id" gorm:"primaryKey"`
	LeaderID string           `json:"leader_id" gorm:"not null;size:255;index"`
	Email    string           `json:"email" gorm:"not null;size:255;index" validate:"required,email"`
	Name     string           `json:"name" gorm:"size:100" validate:"max=100"`
	Token    string           `json:"-" gorm:"uniqueIndex;not null;size:64"`
	Status   InvitationStatus `json:"status" gorm:"default:pending;size:20;index"`

	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
	ClientID   *string    `json:"client_id" gorm:"size:255"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Leader User `json:"-" gorm:"foreignKey:LeaderID"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
