package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"gorm.io/gorm"
)

type InvitationPostgreSQL struct {
	db *gorm.DB
}

func NewInvitationPostgreSQL(db *gorm.DB) repositories.InvitationRepository {
	return &InvitationPostgreSQL{db: db}
}

func (i *InvitationPostgreSQL) Create(ctx context.Context, tx *gorm.DB, invitation *models.Invitation) error {
	return getDB(i.db, tx).WithContext(ctx).Create(invitation).Error
}

func (i *InvitationPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := getDB(i.db, tx).WithContext(ctx).First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (i *InvitationPostgreSQL) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := getDB(i.db, tx).WithContext(ctx).Where("token = ?", token).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (i *InvitationPostgreSQL) Update(ctx context.Context, tx *gorm.DB, invitation *models.Invitation) error {
	return getDB(i.db, tx).WithContext(ctx).Save(invitation).Error
}

func (i *InvitationPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.InvitationFilters) ([]*models.Invitation, int64, error) {
	var invitations []*models.Invitation
	var total int64

	// apply filter first
	query := getDB(i.db, tx).WithContext(ctx).Model(&models.Invitation{})
	if filters.LeaderID != nil {
		query = query.Where("leader_id = ?", *filters.LeaderID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Email != nil {
		query = query.Where("LOWER(email) = LOWER(?)", *filters.Email)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = applyPagination(query.Order("created_at DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&invitations).Error; err != nil {
		return nil, 0, err
	}

	return invitations, total, nil
}

func (i *InvitationPostgreSQL) HasPending(ctx context.Context, tx *gorm.DB, leaderID, email string) (bool, error) {
	var count int64
	if err := getDB(i.db, tx).WithContext(ctx).
		Model(&models.Invitation{}).
		Where("leader_id = ? AND LOWER(email) = LOWER(?) AND status = ? AND expires_at > ?",
			leaderID, email, models.InvitationPending, time.Now().UTC()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i *InvitationPostgreSQL) CountByStatus(ctx context.Context, tx *gorm.DB, leaderID string, status models.InvitationStatus) (int64, error) {
	var count int64
	err := getDB(i.db, tx).WithContext(ctx).
		Model(&models.Invitation{}).
		Where("leader_id = ? AND status = ?", leaderID, status).
		Count(&count).Error
	return count, err
}

func (i *InvitationPostgreSQL) ExpirePending(ctx context.Context, tx *gorm.DB, now time.Time) (int64, error) {
	res := getDB(i.db, tx).WithContext(ctx).
		Model(&models.Invitation{}).
		Where("status = ? AND expires_at <= ?", models.InvitationPending, now).
		Update("status", models.InvitationExpired)
	return res.RowsAffected, res.Error
}
