package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"gorm.io/gorm"
)

// InvitationRepository interface for leader -> client invitations
type InvitationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, invitation *models.Invitation) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Invitation, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*models.Invitation, error)
	Update(ctx context.Context, tx *gorm.DB, invitation *models.Invitation) error

	List(ctx context.Context, tx *gorm.DB, filters InvitationFilters) ([]*models.Invitation, int64, error)
	HasPending(ctx context.Context, tx *gorm.DB, leaderID, email string) (bool, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, leaderID string, status models.InvitationStatus) (int64, error)

	// ExpirePending marks pending invitations past their expiry as expired.
	ExpirePending(ctx context.Context, tx *gorm.DB, now time.Time) (int64, error)
}
