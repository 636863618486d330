package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/auth"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	leaderToken = "leader-token"
	clientToken = "client-token"
)

// ===== FAKES =====

type fakeParser struct{}

func (fakeParser) Parse(token string) (*services.Identity, error) {
	switch token {
	case leaderToken:
		return &services.Identity{ID: "leader-1", Email: "ana@example.com", Role: models.RoleLeader}, nil
	case clientToken:
		return &services.Identity{ID: "client-1", Email: "bruno@example.com", Role: models.RoleClient}, nil
	}
	return nil, auth.ErrInvalidToken
}

type fakeUsers struct{}

func (fakeUsers) EnsureUser(_ context.Context, identity *services.Identity) (*models.User, error) {
	return &models.User{ID: identity.ID, Email: identity.Email, Role: identity.Role}, nil
}

func (fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (fakeUsers) ListClients(_ context.Context, leaderID string, req *services.ClientListRequest) (*services.ClientListResponse, error) {
	return &services.ClientListResponse{
		Clients: []*models.User{{ID: "client-1", LeaderID: &leaderID}},
		Total:   1,
		Limit:   req.Limit,
	}, nil
}

// Fakes embed the interface so that unexercised methods panic.
type fakeSessions struct {
	services.SessionService
	err      error
	userID   string
	answered *services.AnswerRequest
}

func (f *fakeSessions) Start(_ context.Context, userID string, kind scoring.Kind) (*services.SessionResponse, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	session, err := scoring.NewSession("s-1", userID, kind, time.Now())
	if err != nil {
		return nil, err
	}
	q := session.Current()
	return &services.SessionResponse{Session: session, Question: &q, Total: session.Total()}, nil
}

func (f *fakeSessions) Get(_ context.Context, sessionID, userID string) (*services.SessionResponse, error) {
	return nil, f.err
}

func (f *fakeSessions) Answer(_ context.Context, sessionID, userID string, req *services.AnswerRequest) (*services.SessionResponse, error) {
	f.answered = req
	if f.err != nil {
		return nil, f.err
	}
	return &services.SessionResponse{}, nil
}

func (f *fakeSessions) Next(_ context.Context, sessionID, userID string) (*services.SessionResponse, error) {
	return nil, f.err
}

func (f *fakeSessions) Complete(_ context.Context, sessionID, userID string) (*services.CompletionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.CompletionResponse{SessionID: sessionID, Kind: scoring.KindEgogram, Dominant: "a", Percentage: 80}, nil
}

type fakeResults struct {
	services.ResultService
	err         error
	leaderCalls int
}

func (f *fakeResults) GetByID(_ context.Context, id uint, userID string) (*models.TestResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TestResult{ID: id, UserID: userID}, nil
}

func (f *fakeResults) ListByUser(_ context.Context, userID string, req *services.ResultListRequest) (*services.ResultListResponse, error) {
	return &services.ResultListResponse{Results: []*models.TestResult{{ID: 1, UserID: userID}}, Total: 1, Limit: req.Limit}, nil
}

func (f *fakeResults) ListByLeader(_ context.Context, leaderID string, req *services.ResultListRequest) (*services.ResultListResponse, error) {
	f.leaderCalls++
	return &services.ResultListResponse{}, nil
}

type fakeReports struct {
	services.ReportService
}

func (fakeReports) ExportClientResults(_ context.Context, userID string) ([]byte, error) {
	return []byte("xlsx"), nil
}

type fakeInvitations struct {
	services.InvitationService
	err error
}

func (f *fakeInvitations) Invite(_ context.Context, leaderID string, req *services.CreateInvitationRequest) (*models.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Invitation{ID: 7, LeaderID: leaderID, Email: req.Email, Status: models.InvitationPending}, nil
}

func (f *fakeInvitations) Accept(_ context.Context, token, clientID string) (*models.Invitation, error) {
	return nil, f.err
}

func (f *fakeInvitations) Revoke(_ context.Context, id uint, leaderID string) error {
	return f.err
}

type fakeDashboards struct {
	services.DashboardService
}

func (fakeDashboards) ClientDashboard(_ context.Context, userID string) (*services.ClientDashboard, error) {
	return &services.ClientDashboard{TotalCompleted: 2}, nil
}

func (fakeDashboards) LeaderDashboard(_ context.Context, leaderID string) (*services.LeaderDashboard, error) {
	return &services.LeaderDashboard{ClientCount: 5}, nil
}

type fakeManager struct {
	sessions    *fakeSessions
	results     *fakeResults
	invitations *fakeInvitations
}

func (m *fakeManager) User() services.UserService             { return fakeUsers{} }
func (m *fakeManager) Invitation() services.InvitationService { return m.invitations }
func (m *fakeManager) Session() services.SessionService       { return m.sessions }
func (m *fakeManager) Scoring() services.ScoringService {
	return services.NewScoringService(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
func (m *fakeManager) Result() services.ResultService       { return m.results }
func (m *fakeManager) Dashboard() services.DashboardService { return fakeDashboards{} }
func (m *fakeManager) Report() services.ReportService       { return fakeReports{} }

// ===== HELPERS =====

func newTestRouter(t *testing.T) (*gin.Engine, *fakeManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := &fakeManager{
		sessions:    &fakeSessions{},
		results:     &fakeResults{},
		invitations: &fakeInvitations{},
	}
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})

	router := gin.New()
	NewHandlerManager(manager, validator.New(), utils.NewNopLogger(), fakeParser{}, metricsHandler).SetupRoutes(router)
	return router, manager
}

func do(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ===== TESTS =====

func TestPublicEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = do(router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# metrics", w.Body.String())
}

func TestAPIRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/api/v1/assessments", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/api/v1/assessments", "bogus", nil).Code)
}

func TestAssessmentHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("lists kinds", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/assessments", clientToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["assessments"], 3)
	})

	t.Run("questions of unknown kind", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/assessments/zodiac/questions", clientToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("questions", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/assessments/egogram/questions", clientToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["questions"], 10)
	})

	t.Run("scores full answer map", func(t *testing.T) {
		answers := map[string]string{}
		for _, q := range []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10"} {
			answers[q] = "b"
		}
		w := do(router, http.MethodPost, "/api/v1/assessments/egogram/score", clientToken, gin.H{"answers": answers})
		require.Equal(t, http.StatusOK, w.Code)
		egogram := decode(t, w)["egogram"].(map[string]interface{})
		assert.Equal(t, "pn", egogram["dominant"])
	})

	t.Run("degenerate score is unprocessable", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/assessments/proactivity/score", clientToken, gin.H{"answers": map[string]string{}})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decode(t, w)
		assert.Equal(t, "business_rule", body["code"])
		assert.Equal(t, "degenerate_result", body["details"].(map[string]interface{})["rule"])
	})

	t.Run("blank answer ids", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/assessments/egogram/score", clientToken, gin.H{"answers": map[string]string{"q1": " "}})
		require.Equal(t, http.StatusBadRequest, w.Code)
		fields := decode(t, w)["details"].(map[string]interface{})["fields"].(map[string]interface{})
		assert.Equal(t, "must map question ids to option ids", fields["answers"])
	})
}

func TestSessionHandler(t *testing.T) {
	t.Run("start validates kind", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := do(router, http.MethodPost, "/api/v1/sessions", clientToken, gin.H{"kind": "zodiac"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("start", func(t *testing.T) {
		router, manager := newTestRouter(t)
		w := do(router, http.MethodPost, "/api/v1/sessions", clientToken, gin.H{"kind": "animal_profile"})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "client-1", manager.sessions.userID)
		body := decode(t, w)
		assert.EqualValues(t, 10, body["total"])
		assert.Equal(t, "q1", body["question"].(map[string]interface{})["id"])
	})

	t.Run("answer binds payload", func(t *testing.T) {
		router, manager := newTestRouter(t)
		w := do(router, http.MethodPost, "/api/v1/sessions/s-1/answer", clientToken, gin.H{"question_id": "q1", "option_id": "b"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, &services.AnswerRequest{QuestionID: "q1", OptionID: "b"}, manager.sessions.answered)
	})

	t.Run("answer requires option", func(t *testing.T) {
		router, manager := newTestRouter(t)
		w := do(router, http.MethodPost, "/api/v1/sessions/s-1/answer", clientToken, gin.H{"question_id": "q1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, manager.sessions.answered)
	})

	tests := []struct {
		name   string
		method string
		path   string
		err    error
		status int
	}{
		{"missing session", http.MethodGet, "/api/v1/sessions/s-1", services.ErrSessionNotFound, http.StatusNotFound},
		{"foreign session", http.MethodGet, "/api/v1/sessions/s-1",
			services.NewPermissionError("client-1", "s-1", "session", "read", "not owner"), http.StatusForbidden},
		{"next without answer", http.MethodPost, "/api/v1/sessions/s-1/next", scoring.ErrNoAnswer, http.StatusConflict},
		{"wrong question", http.MethodPost, "/api/v1/sessions/s-1/answer", scoring.ErrQuestionMismatch, http.StatusBadRequest},
		{"complete too early", http.MethodPost, "/api/v1/sessions/s-1/complete", scoring.ErrSessionNotComplete, http.StatusConflict},
		{"unexpected failure", http.MethodPost, "/api/v1/sessions/s-1/complete", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, manager := newTestRouter(t)
			manager.sessions.err = tt.err
			w := do(router, tt.method, tt.path, clientToken, gin.H{"question_id": "q1", "option_id": "a"})
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("complete", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := do(router, http.MethodPost, "/api/v1/sessions/s-9/complete", clientToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "s-9", body["session_id"])
		assert.EqualValues(t, 80, body["percentage"])
	})
}

func TestResultHandler(t *testing.T) {
	t.Run("list validates query", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := do(router, http.MethodGet, "/api/v1/results?kind=zodiac", clientToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := do(router, http.MethodGet, "/api/v1/results?kind=egogram&limit=5", clientToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.EqualValues(t, 1, body["total"])
		assert.EqualValues(t, 5, body["limit"])
	})

	t.Run("invalid id", func(t *testing.T) {
		router, _ := newTestRouter(t)
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/v1/results/abc", clientToken, nil).Code)
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/v1/results/0", clientToken, nil).Code)
	})

	t.Run("not found", func(t *testing.T) {
		router, manager := newTestRouter(t)
		manager.results.err = services.ErrResultNotFound
		assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/v1/results/3", clientToken, nil).Code)
	})

	t.Run("export", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := do(router, http.MethodGet, "/api/v1/results/export", clientToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "resultados-")
		assert.Equal(t, "xlsx", w.Body.String())
	})

	t.Run("leader routes reject clients", func(t *testing.T) {
		router, manager := newTestRouter(t)
		assert.Equal(t, http.StatusForbidden, do(router, http.MethodGet, "/api/v1/leader/results", clientToken, nil).Code)
		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/v1/leader/results", leaderToken, nil).Code)
		assert.Equal(t, 1, manager.results.leaderCalls)
	})
}

func TestInvitationHandler(t *testing.T) {
	t.Run("clients cannot invite", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := do(router, http.MethodPost, "/api/v1/invitations", clientToken, gin.H{"email": "c@example.com"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("leader invites", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := do(router, http.MethodPost, "/api/v1/invitations", leaderToken, gin.H{"email": "c@example.com"})
		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "leader-1", body["leader_id"])
		assert.Equal(t, "pending", body["status"])
	})

	t.Run("duplicate invitation conflicts", func(t *testing.T) {
		router, manager := newTestRouter(t)
		manager.invitations.err = services.ErrInvitationDuplicate
		w := do(router, http.MethodPost, "/api/v1/invitations", leaderToken, gin.H{"email": "c@example.com"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("accept expired", func(t *testing.T) {
		router, manager := newTestRouter(t)
		manager.invitations.err = services.ErrInvitationExpired
		w := do(router, http.MethodPost, "/api/v1/invitations/accept", clientToken, gin.H{"token": "abc"})
		assert.Equal(t, http.StatusGone, w.Code)
		assert.Equal(t, "invitation_expired", decode(t, w)["code"])
	})

	t.Run("revoke", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := do(router, http.MethodDelete, "/api/v1/invitations/7", leaderToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("revoke accepted invitation", func(t *testing.T) {
		router, manager := newTestRouter(t)
		manager.invitations.err = services.ErrInvitationNotPending
		w := do(router, http.MethodDelete, "/api/v1/invitations/7", leaderToken, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestClientHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusForbidden, do(router, http.MethodGet, "/api/v1/leader/clients", clientToken, nil).Code)

	w := do(router, http.MethodGet, "/api/v1/leader/clients?limit=10", leaderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 10, body["limit"])
}

func TestDashboardHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/v1/dashboard", leaderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, decode(t, w)["client_count"])

	w = do(router, http.MethodGet, "/api/v1/dashboard", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["total_completed"])
}
