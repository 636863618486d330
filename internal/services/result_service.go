package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
)

type resultService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewResultService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ResultService {
	return &resultService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// GetByID returns a result to its owner, the owner's leader or an admin.
func (s *resultService) GetByID(ctx context.Context, id uint, userID string) (*models.TestResult, error) {
	result, err := s.repo.Result().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	if result.UserID == userID {
		return result, nil
	}

	allowed, err := s.canView(ctx, result.UserID, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, NewPermissionError(userID, strconv.FormatUint(uint64(id), 10), "result", "read", "not the owner or the owner's leader")
	}
	return result, nil
}

func (s *resultService) ListByUser(ctx context.Context, userID string, req *ResultListRequest) (*ResultListResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	filters := req.filters()
	filters.UserID = &userID
	return s.list(ctx, filters)
}

// ListByLeader returns the results of every client linked to the leader.
func (s *resultService) ListByLeader(ctx context.Context, leaderID string, req *ResultListRequest) (*ResultListResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	leader, err := s.getUser(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	if !leader.IsLeader() {
		return nil, ErrInsufficientPermissions
	}

	filters := req.filters()
	filters.LeaderID = &leaderID
	return s.list(ctx, filters)
}

func (s *resultService) Latest(ctx context.Context, userID string, kind scoring.Kind) (*models.TestResult, error) {
	if !kind.Valid() {
		return nil, scoring.ErrUnknownKind
	}
	result, err := s.repo.Result().GetLatest(ctx, nil, userID, string(kind))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get latest result: %w", err)
	}
	return result, nil
}

func (s *resultService) list(ctx context.Context, filters repositories.ResultFilters) (*ResultListResponse, error) {
	results, total, err := s.repo.Result().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return &ResultListResponse{
		Results: results,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

func (s *resultService) validate(req *ResultListRequest) error {
	if req == nil {
		return nil
	}
	return s.validator.Validate(req)
}

func (s *resultService) canView(ctx context.Context, ownerID, viewerID string) (bool, error) {
	viewer, err := s.getUser(ctx, viewerID)
	if err != nil {
		return false, err
	}
	if viewer.Role == models.RoleAdmin {
		return true, nil
	}

	owner, err := s.getUser(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return owner.LeaderID != nil && *owner.LeaderID == viewerID, nil
}

func (s *resultService) getUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
