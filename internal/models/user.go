package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleLeader UserRole = "leader"
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

// User mirrors an identity-provider account. The service is not the owner
// of user data; rows are upserted from token claims.
type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;default:client;size:20;index"`

	// Set for clients that accepted an invitation
	LeaderID *string `json:"leader_id" gorm:"size:255;index"`

	AvatarURL   *string    `json:"avatar_url" gorm:"size:500"`
	Language    string     `json:"language" gorm:"default:pt-BR;size:10"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Leader *User `json:"leader,omitempty" gorm:"foreignKey:LeaderID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsLeader() bool {
	return u.Role == RoleLeader || u.Role == RoleAdmin
}
