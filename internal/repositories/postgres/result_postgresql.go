package postgres

import (
	"context"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r *ResultPostgreSQL) Create(ctx context.Context, tx *gorm.DB, result *models.TestResult) error {
	return getDB(r.db, tx).WithContext(ctx).Create(result).Error
}

func (r *ResultPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.TestResult, error) {
	var result models.TestResult
	if err := getDB(r.db, tx).WithContext(ctx).Preload("User").First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.TestResult, error) {
	var result models.TestResult
	if err := getDB(r.db, tx).WithContext(ctx).Where("session_id = ?", sessionID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]*models.TestResult, int64, error) {
	var results []*models.TestResult
	var total int64

	query := r.applyFilters(getDB(r.db, tx).WithContext(ctx).Model(&models.TestResult{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = r.applySort(query, filters)
	query = applyPagination(query, filters.Limit, filters.Offset)
	if err := query.Preload("User").Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func (r *ResultPostgreSQL) GetLatest(ctx context.Context, tx *gorm.DB, userID, kind string) (*models.TestResult, error) {
	var result models.TestResult
	if err := getDB(r.db, tx).WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("completed_at DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) CountByKind(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]repositories.KindCount, error) {
	var counts []repositories.KindCount
	err := r.applyFilters(getDB(r.db, tx).WithContext(ctx).Model(&models.TestResult{}), filters).
		Select("test_results.kind AS kind, COUNT(*) AS count").
		Group("test_results.kind").
		Order("test_results.kind").
		Scan(&counts).Error
	return counts, err
}

func (r *ResultPostgreSQL) DominantDistribution(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]repositories.DominantCount, error) {
	var counts []repositories.DominantCount
	err := r.applyFilters(getDB(r.db, tx).WithContext(ctx).Model(&models.TestResult{}), filters).
		Select("test_results.kind AS kind, test_results.dominant AS dominant, COUNT(*) AS count").
		Group("test_results.kind, test_results.dominant").
		Order("test_results.kind, count DESC").
		Scan(&counts).Error
	return counts, err
}

func (r *ResultPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ResultFilters) *gorm.DB {
	if filters.UserID != nil {
		query = query.Where("test_results.user_id = ?", *filters.UserID)
	}
	if filters.LeaderID != nil {
		query = query.Joins("JOIN users ON users.id = test_results.user_id").
			Where("users.leader_id = ?", *filters.LeaderID)
	}
	if filters.Kind != nil {
		query = query.Where("test_results.kind = ?", *filters.Kind)
	}
	if filters.DateFrom != nil {
		query = query.Where("test_results.completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("test_results.completed_at <= ?", *filters.DateTo)
	}
	return query
}

func (r *ResultPostgreSQL) applySort(query *gorm.DB, filters repositories.ResultFilters) *gorm.DB {
	sortBy := "completed_at"
	if filters.SortBy == "percentage" {
		sortBy = "percentage"
	}
	order := "DESC"
	if filters.SortOrder == "asc" {
		order = "ASC"
	}
	return query.Order("test_results." + sortBy + " " + order)
}
