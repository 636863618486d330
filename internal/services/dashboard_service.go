package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/cache"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
)

const (
	dashboardKeyPattern = "dashboard:*"
	dashboardTTL        = time.Minute
	recentResultsLimit  = 10
)

// invalidateDashboards drops every cached dashboard. Failures only cost
// freshness until the TTL runs out.
func invalidateDashboards(ctx context.Context, c cache.CacheService, logger *slog.Logger) {
	if err := c.DeletePattern(ctx, dashboardKeyPattern); err != nil {
		logger.Warn("Failed to invalidate dashboards", "error", err)
	}
}

type dashboardService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *dashboardService) ClientDashboard(ctx context.Context, userID string) (*ClientDashboard, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	dashboard := &ClientDashboard{
		User:    user,
		Latest:  make(map[scoring.Kind]*models.TestResult),
		Pending: []scoring.Kind{},
	}

	if user.LeaderID != nil {
		leader, err := s.repo.User().GetByID(ctx, nil, *user.LeaderID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to get leader: %w", err)
		}
		dashboard.Leader = leader
	}

	for _, kind := range scoring.Kinds() {
		latest, err := s.repo.Result().GetLatest(ctx, nil, userID, string(kind))
		switch {
		case err == nil:
			dashboard.Latest[kind] = latest
		case repositories.IsNotFoundError(err):
			dashboard.Pending = append(dashboard.Pending, kind)
		default:
			return nil, fmt.Errorf("failed to get latest %s result: %w", kind, err)
		}
	}

	counts, err := s.repo.Result().CountByKind(ctx, nil, repositories.ResultFilters{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	for _, c := range counts {
		dashboard.TotalCompleted += c.Count
	}

	return dashboard, nil
}

// LeaderDashboard aggregates over every client of the leader. Aggregates are
// cached briefly and dropped whenever a new result is stored.
func (s *dashboardService) LeaderDashboard(ctx context.Context, leaderID string) (*LeaderDashboard, error) {
	leader, err := s.repo.User().GetByID(ctx, nil, leaderID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !leader.IsLeader() {
		return nil, ErrInsufficientPermissions
	}

	key := "dashboard:leader:" + leaderID
	var cached LeaderDashboard
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Dashboard cache read failed", "leader_id", leaderID, "error", err)
	}

	dashboard, err := s.buildLeaderDashboard(ctx, leaderID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, dashboard, dashboardTTL); err != nil {
		s.logger.Warn("Dashboard cache write failed", "leader_id", leaderID, "error", err)
	}
	return dashboard, nil
}

func (s *dashboardService) buildLeaderDashboard(ctx context.Context, leaderID string) (*LeaderDashboard, error) {
	clients, err := s.repo.User().CountClients(ctx, nil, leaderID)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	pending, err := s.repo.Invitation().CountByStatus(ctx, nil, leaderID, models.InvitationPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count invitations: %w", err)
	}

	filters := repositories.ResultFilters{LeaderID: &leaderID}

	counts, err := s.repo.Result().CountByKind(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	completed := make(map[scoring.Kind]int64, len(scoring.Kinds()))
	for _, kind := range scoring.Kinds() {
		completed[kind] = 0
	}
	for _, c := range counts {
		completed[scoring.Kind(c.Kind)] = c.Count
	}

	distribution, err := s.repo.Result().DominantDistribution(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load distribution: %w", err)
	}
	byKind := make(map[scoring.Kind][]repositories.DominantCount)
	for _, d := range distribution {
		byKind[scoring.Kind(d.Kind)] = append(byKind[scoring.Kind(d.Kind)], d)
	}

	recentFilters := filters
	recentFilters.Limit = recentResultsLimit
	recentFilters.SortBy = "completed_at"
	recentFilters.SortOrder = "desc"
	recent, _, err := s.repo.Result().List(ctx, nil, recentFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent results: %w", err)
	}

	return &LeaderDashboard{
		ClientCount:        clients,
		PendingInvitations: pending,
		CompletedByKind:    completed,
		Distribution:       byKind,
		RecentResults:      recent,
	}, nil
}
