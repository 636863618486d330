package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/cache"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDashboardService_ClientDashboard(t *testing.T) {
	repo := newMockRepository()
	svc := NewDashboardService(repo, cache.NewMemoryCache(), testLogger())
	ctx := context.Background()

	repo.user.On("GetByID", mock.Anything, mock.Anything, "client-1").
		Return(&models.User{ID: "client-1", Role: models.RoleClient, LeaderID: strPtr("leader-1")}, nil)
	repo.user.On("GetByID", mock.Anything, mock.Anything, "leader-1").
		Return(&models.User{ID: "leader-1", FullName: "Ana", Role: models.RoleLeader}, nil)
	repo.result.On("GetLatest", mock.Anything, mock.Anything, "client-1", "animal_profile").
		Return(&models.TestResult{ID: 1, Kind: "animal_profile", Dominant: "lobo"}, nil)
	repo.result.On("GetLatest", mock.Anything, mock.Anything, "client-1", "egogram").
		Return(nil, gorm.ErrRecordNotFound)
	repo.result.On("GetLatest", mock.Anything, mock.Anything, "client-1", "proactivity").
		Return(&models.TestResult{ID: 2, Kind: "proactivity"}, nil)
	repo.result.On("CountByKind", mock.Anything, mock.Anything, mock.MatchedBy(func(f repositories.ResultFilters) bool {
		return f.UserID != nil && *f.UserID == "client-1"
	})).Return([]repositories.KindCount{{Kind: "animal_profile", Count: 2}, {Kind: "proactivity", Count: 1}}, nil)

	dashboard, err := svc.ClientDashboard(ctx, "client-1")
	require.NoError(t, err)

	assert.Equal(t, "Ana", dashboard.Leader.FullName)
	assert.Len(t, dashboard.Latest, 2)
	assert.Equal(t, "lobo", dashboard.Latest[scoring.KindAnimalProfile].Dominant)
	assert.Equal(t, []scoring.Kind{scoring.KindEgogram}, dashboard.Pending)
	assert.Equal(t, int64(3), dashboard.TotalCompleted)
	repo.AssertExpectations(t)
}

func TestDashboardService_LeaderDashboard(t *testing.T) {
	repo := newMockRepository()
	memory := cache.NewMemoryCache()
	svc := NewDashboardService(repo, memory, testLogger())
	ctx := context.Background()

	byLeader := mock.MatchedBy(func(f repositories.ResultFilters) bool {
		return f.LeaderID != nil && *f.LeaderID == "leader-1"
	})
	repo.user.On("GetByID", mock.Anything, mock.Anything, "leader-1").
		Return(&models.User{ID: "leader-1", Role: models.RoleLeader}, nil)
	repo.user.On("CountClients", mock.Anything, mock.Anything, "leader-1").Return(int64(4), nil).Once()
	repo.invitation.On("CountByStatus", mock.Anything, mock.Anything, "leader-1", models.InvitationPending).
		Return(int64(2), nil).Once()
	repo.result.On("CountByKind", mock.Anything, mock.Anything, byLeader).
		Return([]repositories.KindCount{{Kind: "egogram", Count: 5}}, nil).Once()
	repo.result.On("DominantDistribution", mock.Anything, mock.Anything, byLeader).
		Return([]repositories.DominantCount{
			{Kind: "egogram", Dominant: "a", Count: 3},
			{Kind: "egogram", Dominant: "pc", Count: 2},
		}, nil).Once()
	repo.result.On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(f repositories.ResultFilters) bool {
		return f.LeaderID != nil && f.Limit == recentResultsLimit && f.SortOrder == "desc"
	})).Return([]*models.TestResult{{ID: 9, CompletedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}}, int64(1), nil).Once()

	dashboard, err := svc.LeaderDashboard(ctx, "leader-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), dashboard.ClientCount)
	assert.Equal(t, int64(2), dashboard.PendingInvitations)
	assert.Equal(t, int64(5), dashboard.CompletedByKind[scoring.KindEgogram])
	assert.Equal(t, int64(0), dashboard.CompletedByKind[scoring.KindProactivity])
	assert.Len(t, dashboard.Distribution[scoring.KindEgogram], 2)
	assert.Len(t, dashboard.RecentResults, 1)

	// Served from cache the second time; aggregates are not queried again.
	cached, err := svc.LeaderDashboard(ctx, "leader-1")
	require.NoError(t, err)
	assert.Equal(t, dashboard.ClientCount, cached.ClientCount)
	repo.AssertExpectations(t)

	// Dropping the dashboard keys forces a rebuild.
	require.NoError(t, memory.DeletePattern(ctx, dashboardKeyPattern))
	var miss LeaderDashboard
	assert.ErrorIs(t, memory.Get(ctx, "dashboard:leader:leader-1", &miss), cache.ErrCacheMiss)
}

func TestDashboardService_LeaderDashboardRequiresLeader(t *testing.T) {
	repo := newMockRepository()
	svc := NewDashboardService(repo, cache.NewMemoryCache(), testLogger())

	repo.user.On("GetByID", mock.Anything, mock.Anything, "client-1").
		Return(&models.User{ID: "client-1", Role: models.RoleClient}, nil)

	_, err := svc.LeaderDashboard(context.Background(), "client-1")
	assert.ErrorIs(t, err, ErrInsufficientPermissions)
}
