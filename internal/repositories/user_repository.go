package repositories

import (
	"context"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"gorm.io/gorm"
)

// UserRepository interface for user operations (users are owned by the identity provider)
type UserRepository interface {
	// Upsert inserts the user or refreshes name, email and last login.
	Upsert(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)

	// Leader/client relationship
	SetLeader(ctx context.Context, tx *gorm.DB, clientID, leaderID string) error
	ListClients(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)
	CountClients(ctx context.Context, tx *gorm.DB, leaderID string) (int64, error)
}
