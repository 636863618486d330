package postgres

import (
	"context"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return getDB(u.db, tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "email", "role", "last_login_at", "updated_at"}),
		}).
		Create(user).Error
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := getDB(u.db, tx).WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := getDB(u.db, tx).WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) SetLeader(ctx context.Context, tx *gorm.DB, clientID, leaderID string) error {
	res := getDB(u.db, tx).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", clientID).
		Update("leader_id", leaderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (u *UserPostgreSQL) ListClients(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := getDB(u.db, tx).WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleClient)
	if filters.LeaderID != nil {
		query = query.Where("leader_id = ?", *filters.LeaderID)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("full_name ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (u *UserPostgreSQL) CountClients(ctx context.Context, tx *gorm.DB, leaderID string) (int64, error) {
	var count int64
	err := getDB(u.db, tx).WithContext(ctx).
		Model(&models.User{}).
		Where("leader_id = ? AND role = ?", leaderID, models.RoleClient).
		Count(&count).Error
	return count, err
}
