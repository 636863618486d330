package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/cache"
	"github.com/SAP-F-2025/behavioral-assessment/internal/events"
	"github.com/SAP-F-2025/behavioral-assessment/internal/metrics"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const sessionKeyPrefix = "session:"

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

type sessionService struct {
	repo           repositories.Repository
	cache          cache.CacheService
	eventPublisher events.EventPublisher
	metrics        *metrics.Metrics
	logger         *slog.Logger
	slogger        *ServiceLogger
	ttl            time.Duration

	now      func() time.Time
	newID    func() string
	runAsync func(func())
}

func NewSessionService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	ttl time.Duration,
) SessionService {
	return &sessionService{
		repo:           repo,
		cache:          cacheService,
		eventPublisher: eventPublisher,
		metrics:        m,
		logger:         logger,
		slogger:        NewServiceLogger(logger, "session"),
		ttl:            ttl,
		now:            time.Now,
		newID:          uuid.NewString,
		runAsync:       func(fn func()) { go fn() },
	}
}

func (s *sessionService) Start(ctx context.Context, userID string, kind scoring.Kind) (resp *SessionResponse, err error) {
	op := s.slogger.WithOperation(ctx, "start_session", userID)
	defer func() {
		resourceID := ""
		if resp != nil {
			resourceID = resp.Session.ID
		}
		op.LogResult(resourceID, "session", err)
	}()

	session, err := scoring.NewSession(s.newID(), userID, kind, s.now())
	if err != nil {
		return nil, err
	}
	if err = s.save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.IncSessionStarted(string(kind))
	return s.response(session), nil
}

func (s *sessionService) Get(ctx context.Context, sessionID, userID string) (*SessionResponse, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return s.response(session), nil
}

func (s *sessionService) Answer(ctx context.Context, sessionID, userID string, req *AnswerRequest) (*SessionResponse, error) {
	if req == nil {
		req = &AnswerRequest{}
	}
	var invalid ValidationErrors
	if req.QuestionID == "" {
		invalid = append(invalid, *NewValidationError("question_id", "is required", nil))
	}
	if req.OptionID == "" {
		invalid = append(invalid, *NewValidationError("option_id", "is required", nil))
	}
	if len(invalid) > 0 {
		return nil, invalid
	}
	return s.transition(ctx, sessionID, userID, "answer", func(session *scoring.Session) error {
		return session.Answer(req.QuestionID, req.OptionID)
	})
}

func (s *sessionService) Next(ctx context.Context, sessionID, userID string) (*SessionResponse, error) {
	return s.transition(ctx, sessionID, userID, "next", func(session *scoring.Session) error {
		return session.Next()
	})
}

func (s *sessionService) Previous(ctx context.Context, sessionID, userID string) (*SessionResponse, error) {
	return s.transition(ctx, sessionID, userID, "previous", func(session *scoring.Session) error {
		return session.Previous()
	})
}

func (s *sessionService) transition(ctx context.Context, sessionID, userID, name string, apply func(*scoring.Session) error) (*SessionResponse, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	err = apply(session)
	s.metrics.ObserveTransition(string(session.Kind), name, err)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.response(session), nil
}

// Complete scores a fully answered session. The result is returned right
// away; persisting it and publishing the completion event happen in the
// background. Completing an already scored session returns the stored result.
func (s *sessionService) Complete(ctx context.Context, sessionID, userID string) (resp *CompletionResponse, err error) {
	op := s.slogger.WithOperation(ctx, "complete_session", userID)
	defer func() { op.LogResult(sessionID, "session", err) }()

	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	alreadyScored := session.State == scoring.SessionScored
	result, err := session.Score(s.now())
	s.metrics.ObserveTransition(string(session.Kind), "complete", err)
	if err != nil {
		return nil, err
	}
	if result.Degenerate() {
		return nil, NewBusinessRuleError("degenerate_result", "answers do not produce a valid score",
			map[string]interface{}{"session_id": sessionID, "kind": session.Kind})
	}

	resp = &CompletionResponse{
		SessionID:   session.ID,
		Kind:        session.Kind,
		Dominant:    result.Dominant(),
		Percentage:  result.Percentage(),
		Result:      result,
		CompletedAt: *session.CompletedAt,
	}
	if alreadyScored {
		return resp, nil
	}

	if err = s.save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.ObserveScored(string(session.Kind), resp.Dominant, resp.Percentage)

	snapshot := *session
	s.runAsync(func() {
		s.persistResult(context.WithoutCancel(ctx), &snapshot)
	})
	return resp, nil
}

func (s *sessionService) Retake(ctx context.Context, sessionID, userID string) (resp *SessionResponse, err error) {
	op := s.slogger.WithOperation(ctx, "retake_session", userID)
	defer func() { op.LogResult(sessionID, "session", err) }()

	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	fresh := session.Retake(s.newID(), s.now())
	if err = s.save(ctx, fresh); err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, sessionKey(sessionID)); err != nil {
		s.logger.Warn("Failed to delete replaced session", "session_id", sessionID, "error", err)
	}

	s.metrics.ObserveTransition(string(session.Kind), "retake", nil)
	s.metrics.IncSessionStarted(string(fresh.Kind))
	return s.response(fresh), nil
}

// ===== HELPERS =====

func (s *sessionService) load(ctx context.Context, sessionID, userID string) (*scoring.Session, error) {
	var session scoring.Session
	if err := s.cache.Get(ctx, sessionKey(sessionID), &session); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return nil, NewPermissionError(userID, sessionID, "session", "access", "session belongs to another user")
	}
	return &session, nil
}

func (s *sessionService) save(ctx context.Context, session *scoring.Session) error {
	if err := s.cache.Set(ctx, sessionKey(session.ID), session, s.ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *sessionService) response(session *scoring.Session) *SessionResponse {
	resp := &SessionResponse{
		Session:  session,
		Total:    session.Total(),
		Progress: session.Progress(),
	}
	if session.State == scoring.SessionUnanswered || session.State == scoring.SessionAnswering {
		q := session.Current()
		resp.Question = &q
	}
	return resp
}

func (s *sessionService) persistResult(ctx context.Context, session *scoring.Session) {
	defer func() {
		if r := recover(); r != nil {
			s.slogger.LogRecovery(ctx, "persist_result", session.UserID, r, debug.Stack())
			s.metrics.IncPersistFailure(string(session.Kind))
		}
	}()

	// A row for this session means an earlier attempt already persisted,
	// invalidated and published.
	existing, err := s.repo.Result().GetBySessionID(ctx, nil, session.ID)
	if err == nil {
		s.logger.Info("Result already persisted", "session_id", session.ID, "result_id", existing.ID)
		return
	}
	if !repositories.IsNotFoundError(err) {
		s.logger.Error("Failed to check for persisted result",
			"session_id", session.ID, "user_id", session.UserID, "kind", session.Kind, "error", err)
		s.metrics.IncPersistFailure(string(session.Kind))
		return
	}

	record, err := newTestResult(session)
	if err == nil {
		err = s.repo.Result().Create(ctx, nil, record)
	}
	if err != nil {
		s.logger.Error("Failed to persist result",
			"session_id", session.ID, "user_id", session.UserID, "kind", session.Kind, "error", err)
		s.metrics.IncPersistFailure(string(session.Kind))
		return
	}

	invalidateDashboards(ctx, s.cache, s.logger)

	completed := events.ResultCompletedEvent{
		ResultID:    record.ID,
		SessionID:   session.ID,
		UserID:      session.UserID,
		Kind:        record.Kind,
		Dominant:    record.Dominant,
		Percentage:  record.Percentage,
		CompletedAt: record.CompletedAt,
	}
	if user, err := s.repo.User().GetByID(ctx, nil, session.UserID); err == nil {
		completed.LeaderID = user.LeaderID
	}

	event := events.NewNotificationEvent(events.EventResultCompleted, session.UserID, completed)
	if err := s.eventPublisher.PublishNotificationEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish result event", "result_id", record.ID, "error", err)
	}
}

func newTestResult(session *scoring.Session) (*models.TestResult, error) {
	answers, err := json.Marshal(session.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	scores, err := json.Marshal(session.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scores: %w", err)
	}
	return &models.TestResult{
		UserID:      session.UserID,
		Kind:        string(session.Kind),
		SessionID:   session.ID,
		Dominant:    session.Result.Dominant(),
		Percentage:  session.Result.Percentage(),
		Answers:     datatypes.JSON(answers),
		Scores:      datatypes.JSON(scores),
		StartedAt:   session.StartedAt,
		CompletedAt: *session.CompletedAt,
	}, nil
}
