package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/cache"
	"github.com/SAP-F-2025/behavioral-assessment/internal/events"
	"github.com/SAP-F-2025/behavioral-assessment/internal/metrics"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invitationService struct {
	repo           repositories.Repository
	cache          cache.CacheService
	eventPublisher events.EventPublisher
	metrics        *metrics.Metrics
	logger         *slog.Logger
	slogger        *ServiceLogger
	validator      *validator.Validator
	ttl            time.Duration
	now            func() time.Time
}

func NewInvitationService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	validator *validator.Validator,
	ttl time.Duration,
) InvitationService {
	return &invitationService{
		repo:           repo,
		cache:          cacheService,
		eventPublisher: eventPublisher,
		metrics:        m,
		logger:         logger,
		slogger:        NewServiceLogger(logger, "invitation"),
		validator:      validator,
		ttl:            ttl,
		now:            time.Now,
	}
}

func (s *invitationService) Invite(ctx context.Context, leaderID string, req *CreateInvitationRequest) (invitation *models.Invitation, err error) {
	op := s.slogger.WithOperation(ctx, "invite", leaderID)
	defer func() {
		resourceID := ""
		if invitation != nil {
			resourceID = strconv.FormatUint(uint64(invitation.ID), 10)
		}
		op.LogResult(resourceID, "invitation", err)
	}()

	req.Email = strings.TrimSpace(req.Email)
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(req.Email)

	leader, err := s.requireLeader(ctx, leaderID, "invite")
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(leader.Email, email) {
		return nil, NewBusinessRuleError("self_invitation", "leaders cannot invite themselves", nil)
	}

	if existing, lookupErr := s.repo.User().GetByEmail(ctx, nil, email); lookupErr == nil {
		if existing.LeaderID != nil && *existing.LeaderID == leaderID {
			return nil, NewBusinessRuleError("already_client", "this person is already your client",
				map[string]interface{}{"email": email})
		}
	} else if !repositories.IsNotFoundError(lookupErr) {
		return nil, fmt.Errorf("failed to look up invitee: %w", lookupErr)
	}

	pending, err := s.repo.Invitation().HasPending(ctx, nil, leaderID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending invitations: %w", err)
	}
	if pending {
		return nil, ErrInvitationDuplicate
	}

	invitation = &models.Invitation{
		LeaderID:  leaderID,
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		Token:     strings.ReplaceAll(uuid.NewString(), "-", ""),
		Status:    models.InvitationPending,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err = s.repo.Invitation().Create(ctx, nil, invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.metrics.IncInvitation(string(models.InvitationPending))
	invalidateDashboards(ctx, s.cache, s.logger)
	s.publish(ctx, events.EventInvitationCreated, leaderID, events.InvitationCreatedEvent{
		InvitationID: invitation.ID,
		LeaderID:     leaderID,
		LeaderName:   leader.FullName,
		Email:        invitation.Email,
		Name:         invitation.Name,
		Token:        invitation.Token,
		ExpiresAt:    invitation.ExpiresAt,
	})
	op.LogAudit(AuditEventCreate, strconv.FormatUint(uint64(invitation.ID), 10), "invitation", nil, invitation.Email)

	return invitation, nil
}

func (s *invitationService) Accept(ctx context.Context, token, clientID string) (invitation *models.Invitation, err error) {
	op := s.slogger.WithOperation(ctx, "accept_invitation", clientID)
	defer func() { op.LogResult("", "invitation", err) }()

	if strings.TrimSpace(token) == "" {
		return nil, ValidationErrors{*NewValidationError("token", "is required", nil)}
	}

	var stale *models.Invitation
	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		inv, err := s.repo.Invitation().GetByToken(ctx, tx, token)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrInvitationNotFound
			}
			return fmt.Errorf("failed to get invitation: %w", err)
		}
		if inv.Status != models.InvitationPending {
			return ErrInvitationNotPending
		}
		now := s.now()
		if inv.IsExpired(now) {
			stale = inv
			return ErrInvitationExpired
		}
		if inv.LeaderID == clientID {
			return ErrInvitationSelf
		}

		// The token authorizes the link, but only for clients who are not
		// already linked to a different leader.
		client, err := s.repo.User().GetByID(ctx, tx, clientID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}
		if client.Role != models.RoleClient {
			return NewPermissionError(clientID, strconv.FormatUint(uint64(inv.ID), 10), "invitation", "accept",
				"only clients accept invitations")
		}
		if client.LeaderID != nil && *client.LeaderID != inv.LeaderID {
			return NewBusinessRuleError("already_linked", "client is already linked to another leader",
				map[string]interface{}{"invitation_id": inv.ID})
		}

		if err := s.repo.User().SetLeader(ctx, tx, clientID, inv.LeaderID); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to link client to leader: %w", err)
		}

		inv.Status = models.InvitationAccepted
		inv.AcceptedAt = &now
		inv.ClientID = &clientID
		if err := s.repo.Invitation().Update(ctx, tx, inv); err != nil {
			return fmt.Errorf("failed to update invitation: %w", err)
		}
		invitation = inv
		return nil
	})
	if err != nil {
		// The rolled back transaction discards status changes, so the
		// expiry is written on its own.
		if errors.Is(err, ErrInvitationExpired) && stale != nil {
			stale.Status = models.InvitationExpired
			if updateErr := s.repo.Invitation().Update(ctx, nil, stale); updateErr != nil {
				s.logger.Error("Failed to mark invitation expired", "invitation_id", stale.ID, "error", updateErr)
			} else {
				s.metrics.IncInvitation(string(models.InvitationExpired))
				invalidateDashboards(ctx, s.cache, s.logger)
			}
		}
		return nil, err
	}

	s.metrics.IncInvitation(string(models.InvitationAccepted))
	invalidateDashboards(ctx, s.cache, s.logger)
	s.publish(ctx, events.EventInvitationAccepted, invitation.LeaderID, events.InvitationAcceptedEvent{
		InvitationID: invitation.ID,
		LeaderID:     invitation.LeaderID,
		ClientID:     clientID,
		AcceptedAt:   *invitation.AcceptedAt,
	})
	return invitation, nil
}

func (s *invitationService) Revoke(ctx context.Context, id uint, leaderID string) (err error) {
	resourceID := strconv.FormatUint(uint64(id), 10)
	op := s.slogger.WithOperation(ctx, "revoke_invitation", leaderID)
	defer func() { op.LogResult(resourceID, "invitation", err) }()

	invitation, err := s.repo.Invitation().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to get invitation: %w", err)
	}
	if invitation.LeaderID != leaderID {
		return NewPermissionError(leaderID, resourceID, "invitation", "revoke", "not the inviting leader")
	}
	if invitation.Status != models.InvitationPending {
		return ErrInvitationNotPending
	}

	invitation.Status = models.InvitationRevoked
	if err = s.repo.Invitation().Update(ctx, nil, invitation); err != nil {
		return fmt.Errorf("failed to revoke invitation: %w", err)
	}

	s.metrics.IncInvitation(string(models.InvitationRevoked))
	invalidateDashboards(ctx, s.cache, s.logger)
	s.publish(ctx, events.EventInvitationRevoked, leaderID, events.InvitationRevokedEvent{
		InvitationID: invitation.ID,
		LeaderID:     leaderID,
		Email:        invitation.Email,
	})
	op.LogAudit(AuditEventUpdate, resourceID, "invitation", models.InvitationPending, models.InvitationRevoked)
	return nil
}

func (s *invitationService) ListByLeader(ctx context.Context, leaderID string, req *InvitationListRequest) (*InvitationListResponse, error) {
	if req == nil {
		req = &InvitationListRequest{}
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.requireLeader(ctx, leaderID, "list"); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultPageSize
	}
	invitations, total, err := s.repo.Invitation().List(ctx, nil, repositories.InvitationFilters{
		LeaderID: &leaderID,
		Status:   req.Status,
		Limit:    limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	return &InvitationListResponse{
		Invitations: invitations,
		Total:       total,
		Limit:       limit,
		Offset:      req.Offset,
	}, nil
}

// ExpireStale flips pending invitations past their expiry to expired.
func (s *invitationService) ExpireStale(ctx context.Context) (int64, error) {
	n, err := s.repo.Invitation().ExpirePending(ctx, nil, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire invitations: %w", err)
	}
	if n > 0 {
		s.logger.Info("Expired stale invitations", "count", n)
		invalidateDashboards(ctx, s.cache, s.logger)
	}
	return n, nil
}

func (s *invitationService) requireLeader(ctx context.Context, userID, action string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsLeader() {
		return nil, NewPermissionError(userID, "", "invitation", action, "only leaders manage invitations")
	}
	return user, nil
}

// publish logs and swallows publisher failures; the invitation itself is
// already committed. Events are keyed by leader.
func (s *invitationService) publish(ctx context.Context, eventType events.EventType, leaderID string, data interface{}) {
	event := events.NewNotificationEvent(eventType, leaderID, data)
	if err := s.eventPublisher.PublishNotificationEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish invitation event", "event_type", eventType, "error", err)
	}
}
