package repositories

import (
	"context"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"gorm.io/gorm"
)

// ResultRepository interface for persisted assessment results
type ResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *models.TestResult) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.TestResult, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.TestResult, error)

	List(ctx context.Context, tx *gorm.DB, filters ResultFilters) ([]*models.TestResult, int64, error)
	GetLatest(ctx context.Context, tx *gorm.DB, userID, kind string) (*models.TestResult, error)

	// Dashboard aggregates
	CountByKind(ctx context.Context, tx *gorm.DB, filters ResultFilters) ([]KindCount, error)
	DominantDistribution(ctx context.Context, tx *gorm.DB, filters ResultFilters) ([]DominantCount, error)
}
