package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

func (s *userService) EnsureUser(ctx context.Context, identity *Identity) (*models.User, error) {
	if err := s.validator.Validate(identity); err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:          identity.ID,
		FullName:    identity.Name,
		Email:       identity.Email,
		Role:        identity.Role,
		IsActive:    true,
		LastLoginAt: &now,
	}
	if user.FullName == "" {
		user.FullName = identity.Email
	}
	if identity.AvatarURL != "" {
		avatar := identity.AvatarURL
		user.AvatarURL = &avatar
	}

	if err := s.repo.User().Upsert(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	// Re-read so that locally owned fields (leader link) are populated.
	stored, err := s.repo.User().GetByID(ctx, nil, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	s.logger.Debug("User ensured", "user_id", stored.ID, "role", stored.Role)
	return stored, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListClients pages through the clients linked to a leader.
func (s *userService) ListClients(ctx context.Context, leaderID string, req *ClientListRequest) (*ClientListResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	leader, err := s.GetByID(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	if !leader.IsLeader() {
		return nil, ErrInsufficientPermissions
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultPageSize
	}

	clients, total, err := s.repo.User().ListClients(ctx, nil, repositories.UserFilters{
		LeaderID: &leaderID,
		Search:   strings.TrimSpace(req.Search),
		Limit:    limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return &ClientListResponse{
		Clients: clients,
		Total:   total,
		Limit:   limit,
		Offset:  req.Offset,
	}, nil
}
