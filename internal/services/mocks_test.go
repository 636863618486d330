package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRepository wires the per-table mocks together and runs transactions
// inline with a nil tx.
type MockRepository struct {
	user       *MockUserRepository
	invitation *MockInvitationRepository
	result     *MockResultRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		user:       &MockUserRepository{},
		invitation: &MockInvitationRepository{},
		result:     &MockResultRepository{},
	}
}

func (m *MockRepository) User() repositories.UserRepository             { return m.user }
func (m *MockRepository) Invitation() repositories.InvitationRepository { return m.invitation }
func (m *MockRepository) Result() repositories.ResultRepository         { return m.result }

func (m *MockRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *MockRepository) AssertExpectations(t mock.TestingT) {
	m.user.AssertExpectations(t)
	m.invitation.AssertExpectations(t)
	m.result.AssertExpectations(t)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, tx *gorm.DB, user *models.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	args := m.Called(ctx, tx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetLeader(ctx context.Context, tx *gorm.DB, clientID, leaderID string) error {
	args := m.Called(ctx, tx, clientID, leaderID)
	return args.Error(0)
}

func (m *MockUserRepository) ListClients(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountClients(ctx context.Context, tx *gorm.DB, leaderID string) (int64, error) {
	args := m.Called(ctx, tx, leaderID)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvitationRepository is a mock implementation of InvitationRepository
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Create(ctx context.Context, tx *gorm.DB, invitation *models.Invitation) error {
	args := m.Called(ctx, tx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Invitation, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*models.Invitation, error) {
	args := m.Called(ctx, tx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) Update(ctx context.Context, tx *gorm.DB, invitation *models.Invitation) error {
	args := m.Called(ctx, tx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.InvitationFilters) ([]*models.Invitation, int64, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*models.Invitation), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvitationRepository) HasPending(ctx context.Context, tx *gorm.DB, leaderID, email string) (bool, error) {
	args := m.Called(ctx, tx, leaderID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvitationRepository) CountByStatus(ctx context.Context, tx *gorm.DB, leaderID string, status models.InvitationStatus) (int64, error) {
	args := m.Called(ctx, tx, leaderID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvitationRepository) ExpirePending(ctx context.Context, tx *gorm.DB, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockResultRepository is a mock implementation of ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, tx *gorm.DB, result *models.TestResult) error {
	args := m.Called(ctx, tx, result)
	return args.Error(0)
}

func (m *MockResultRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.TestResult, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestResult), args.Error(1)
}

func (m *MockResultRepository) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.TestResult, error) {
	args := m.Called(ctx, tx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestResult), args.Error(1)
}

func (m *MockResultRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]*models.TestResult, int64, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*models.TestResult), args.Get(1).(int64), args.Error(2)
}

func (m *MockResultRepository) GetLatest(ctx context.Context, tx *gorm.DB, userID, kind string) (*models.TestResult, error) {
	args := m.Called(ctx, tx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestResult), args.Error(1)
}

func (m *MockResultRepository) CountByKind(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]repositories.KindCount, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]repositories.KindCount), args.Error(1)
}

func (m *MockResultRepository) DominantDistribution(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]repositories.DominantCount, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]repositories.DominantCount), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
