package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"gorm.io/gorm"
)

// Repository groups the per-table repositories. Every method accepts an
// optional transaction; nil means the root connection.
type Repository interface {
	User() UserRepository
	Invitation() InvitationRepository
	Result() ResultRepository

	// Transaction runs fn inside a database transaction.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// IsNotFoundError reports whether err is gorm's missing-row error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED FILTER STRUCTS =====

type ResultFilters struct {
	UserID    *string    `json:"user_id"`
	LeaderID  *string    `json:"leader_id"` // results of all clients of this leader
	Kind      *string    `json:"kind"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "completed_at", "percentage"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

type InvitationFilters struct {
	LeaderID *string                  `json:"leader_id"`
	Status   *models.InvitationStatus `json:"status"`
	Email    *string                  `json:"email"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}

type UserFilters struct {
	LeaderID *string `json:"leader_id"`
	Search   string  `json:"search"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// KindCount is a per-kind tally used by dashboards.
type KindCount struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

// DominantCount is how many results ended with a given dominant label.
type DominantCount struct {
	Kind     string `json:"kind"`
	Dominant string `json:"dominant"`
	Count    int64  `json:"count"`
}
