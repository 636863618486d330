package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/cache"
	"github.com/SAP-F-2025/behavioral-assessment/internal/events"
	"github.com/SAP-F-2025/behavioral-assessment/internal/metrics"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sessionFixture struct {
	svc       *sessionService
	repo      *MockRepository
	cache     *cache.MemoryCache
	publisher *events.MockEventPublisher
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	repo := newMockRepository()
	memory := cache.NewMemoryCache()
	publisher := events.NewMockEventPublisher(testLogger())
	m := metrics.MustNewMetrics(prometheus.NewRegistry())

	svc := NewSessionService(repo, memory, publisher, m, testLogger(), time.Hour).(*sessionService)
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("session-%d", ids)
	}
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	svc.runAsync = func(fn func()) { fn() }

	return &sessionFixture{svc: svc, repo: repo, cache: memory, publisher: publisher}
}

// optionWithValue picks the option worth v points on a proactivity question.
func optionWithValue(t *testing.T, q scoring.Question, v float64) string {
	t.Helper()
	for _, o := range q.Options {
		if o.Value != nil && *o.Value == v {
			return o.ID
		}
	}
	t.Fatalf("question %s has no option worth %v", q.ID, v)
	return ""
}

func answerAll(t *testing.T, f *sessionFixture, sessionID, userID string, points float64) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < len(scoring.ProactivityQuestions()); i++ {
		resp, err := f.svc.Get(ctx, sessionID, userID)
		require.NoError(t, err)
		require.NotNil(t, resp.Question)

		_, err = f.svc.Answer(ctx, sessionID, userID, &AnswerRequest{
			QuestionID: resp.Question.ID,
			OptionID:   optionWithValue(t, *resp.Question, points),
		})
		require.NoError(t, err)
		_, err = f.svc.Next(ctx, sessionID, userID)
		require.NoError(t, err)
	}
}

func TestSessionService_Start(t *testing.T) {
	f := newSessionFixture(t)

	resp, err := f.svc.Start(context.Background(), "client-1", scoring.KindEgogram)
	require.NoError(t, err)

	assert.Equal(t, "session-1", resp.Session.ID)
	assert.Equal(t, scoring.SessionUnanswered, resp.Session.State)
	assert.Equal(t, 10, resp.Total)
	require.NotNil(t, resp.Question)
	assert.Equal(t, "q1", resp.Question.ID)

	var stored scoring.Session
	require.NoError(t, f.cache.Get(context.Background(), "session:session-1", &stored))
	assert.Equal(t, "client-1", stored.UserID)
}

func TestSessionService_StartUnknownKind(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.Start(context.Background(), "client-1", scoring.Kind("disc"))
	assert.ErrorIs(t, err, scoring.ErrUnknownKind)
	assert.True(t, IsValidation(err))
}

func TestSessionService_GetErrors(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, "missing", "client-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	resp, err := f.svc.Start(ctx, "client-1", scoring.KindEgogram)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, resp.Session.ID, "someone-else")
	var permErr *PermissionError
	require.True(t, errors.As(err, &permErr))
	assert.Equal(t, "session", permErr.Resource)
}

func TestSessionService_AnswerValidation(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	resp, err := f.svc.Start(ctx, "client-1", scoring.KindEgogram)
	require.NoError(t, err)

	_, err = f.svc.Answer(ctx, resp.Session.ID, "client-1", &AnswerRequest{})
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)

	_, err = f.svc.Answer(ctx, resp.Session.ID, "client-1", &AnswerRequest{QuestionID: "q2", OptionID: "a"})
	assert.ErrorIs(t, err, scoring.ErrQuestionMismatch)

	_, err = f.svc.Next(ctx, resp.Session.ID, "client-1")
	assert.ErrorIs(t, err, scoring.ErrNoAnswer)
	assert.True(t, IsSessionRule(err))
}

func TestSessionService_NavigationIsPersisted(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	resp, err := f.svc.Start(ctx, "client-1", scoring.KindEgogram)
	require.NoError(t, err)
	id := resp.Session.ID

	_, err = f.svc.Answer(ctx, id, "client-1", &AnswerRequest{QuestionID: "q1", OptionID: "a"})
	require.NoError(t, err)
	resp, err = f.svc.Next(ctx, id, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "q2", resp.Question.ID)
	assert.Equal(t, 10.0, resp.Progress)

	resp, err = f.svc.Previous(ctx, id, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "q1", resp.Question.ID)
	assert.Equal(t, "a", resp.Session.Answers["q1"])

	resp, err = f.svc.Get(ctx, id, "client-1")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Session.Index)
	assert.Equal(t, scoring.SessionAnswering, resp.Session.State)
}

func TestSessionService_CompletePersistsAndPublishes(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	f.repo.result.On("GetBySessionID", mock.Anything, mock.Anything, "session-1").Return(nil, gorm.ErrRecordNotFound).Once()
	f.repo.result.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.TestResult")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*models.TestResult).ID = 42
		}).
		Return(nil).Once()
	f.repo.user.On("GetByID", mock.Anything, mock.Anything, "client-1").
		Return(&models.User{ID: "client-1", LeaderID: strPtr("leader-1")}, nil)

	resp, err := f.svc.Start(ctx, "client-1", scoring.KindProactivity)
	require.NoError(t, err)
	id := resp.Session.ID

	_, err = f.svc.Complete(ctx, id, "client-1")
	assert.ErrorIs(t, err, scoring.ErrSessionNotComplete)

	answerAll(t, f, id, "client-1", 3)

	completion, err := f.svc.Complete(ctx, id, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "Altamente Proativo", completion.Dominant)
	assert.Equal(t, 100.0, completion.Percentage)
	require.NotNil(t, completion.Result.Proactivity)
	assert.Equal(t, 30.0, completion.Result.Proactivity.Score)

	f.repo.AssertExpectations(t)
	created := f.repo.result.Calls[1].Arguments.Get(2).(*models.TestResult)
	assert.Equal(t, "client-1", created.UserID)
	assert.Equal(t, "proactivity", created.Kind)
	assert.Equal(t, id, created.SessionID)
	assert.Equal(t, 100.0, created.Percentage)

	var stored scoring.Result
	require.NoError(t, json.Unmarshal(created.Scores, &stored))
	assert.Equal(t, "Altamente Proativo", stored.Proactivity.Level)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventResultCompleted, published[0].Type)
	payload, ok := published[0].Data.(events.ResultCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, uint(42), payload.ResultID)
	require.NotNil(t, payload.LeaderID)
	assert.Equal(t, "leader-1", *payload.LeaderID)

	// A second call returns the stored result without writing again.
	again, err := f.svc.Complete(ctx, id, "client-1")
	require.NoError(t, err)
	assert.Equal(t, completion.Dominant, again.Dominant)
	f.repo.result.AssertNumberOfCalls(t, "Create", 1)
	assert.Len(t, f.publisher.GetPublishedEvents(), 1)
}

func TestSessionService_CompleteSurvivesPersistFailure(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	f.repo.result.On("GetBySessionID", mock.Anything, mock.Anything, "session-1").Return(nil, gorm.ErrRecordNotFound).Once()
	f.repo.result.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).Once()

	resp, err := f.svc.Start(ctx, "client-1", scoring.KindProactivity)
	require.NoError(t, err)
	answerAll(t, f, resp.Session.ID, "client-1", 0)

	completion, err := f.svc.Complete(ctx, resp.Session.ID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "Altamente Reativo", completion.Dominant)
	assert.Empty(t, f.publisher.GetPublishedEvents())
	f.repo.AssertExpectations(t)
}

func TestSessionService_CompleteSkipsPersistedSession(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	f.repo.result.On("GetBySessionID", mock.Anything, mock.Anything, "session-1").
		Return(&models.TestResult{ID: 42, SessionID: "session-1"}, nil).Once()

	resp, err := f.svc.Start(ctx, "client-1", scoring.KindProactivity)
	require.NoError(t, err)
	answerAll(t, f, resp.Session.ID, "client-1", 2)

	completion, err := f.svc.Complete(ctx, resp.Session.ID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "Moderadamente Proativo", completion.Dominant)

	f.repo.result.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.GetPublishedEvents())
	f.repo.AssertExpectations(t)
}

func TestSessionService_Retake(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Start(ctx, "client-1", scoring.KindEgogram)
	require.NoError(t, err)
	oldID := resp.Session.ID
	_, err = f.svc.Answer(ctx, oldID, "client-1", &AnswerRequest{QuestionID: "q1", OptionID: "b"})
	require.NoError(t, err)

	fresh, err := f.svc.Retake(ctx, oldID, "client-1")
	require.NoError(t, err)
	assert.NotEqual(t, oldID, fresh.Session.ID)
	assert.Empty(t, fresh.Session.Answers)
	assert.Equal(t, scoring.KindEgogram, fresh.Session.Kind)

	_, err = f.svc.Get(ctx, oldID, "client-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.svc.Get(ctx, fresh.Session.ID, "client-1")
	assert.NoError(t, err)
}
