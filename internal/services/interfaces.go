package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
)

// ===== SERVICE INTERFACES =====

type UserService interface {
	// EnsureUser upserts the local copy of an identity-provider account.
	EnsureUser(ctx context.Context, identity *Identity) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListClients(ctx context.Context, leaderID string, req *ClientListRequest) (*ClientListResponse, error)
}

type InvitationService interface {
	Invite(ctx context.Context, leaderID string, req *CreateInvitationRequest) (*models.Invitation, error)
	Accept(ctx context.Context, token, clientID string) (*models.Invitation, error)
	Revoke(ctx context.Context, id uint, leaderID string) error
	ListByLeader(ctx context.Context, leaderID string, req *InvitationListRequest) (*InvitationListResponse, error)
	ExpireStale(ctx context.Context) (int64, error)
}

type SessionService interface {
	Start(ctx context.Context, userID string, kind scoring.Kind) (*SessionResponse, error)
	Get(ctx context.Context, sessionID, userID string) (*SessionResponse, error)
	Answer(ctx context.Context, sessionID, userID string, req *AnswerRequest) (*SessionResponse, error)
	Next(ctx context.Context, sessionID, userID string) (*SessionResponse, error)
	Previous(ctx context.Context, sessionID, userID string) (*SessionResponse, error)
	Complete(ctx context.Context, sessionID, userID string) (*CompletionResponse, error)
	Retake(ctx context.Context, sessionID, userID string) (*SessionResponse, error)
}

type ScoringService interface {
	Kinds() []AssessmentInfo
	Questions(kind scoring.Kind) ([]scoring.Question, error)
	Score(ctx context.Context, kind scoring.Kind, answers scoring.Answers) (*scoring.Result, error)
}

type ResultService interface {
	GetByID(ctx context.Context, id uint, userID string) (*models.TestResult, error)
	ListByUser(ctx context.Context, userID string, req *ResultListRequest) (*ResultListResponse, error)
	ListByLeader(ctx context.Context, leaderID string, req *ResultListRequest) (*ResultListResponse, error)
	Latest(ctx context.Context, userID string, kind scoring.Kind) (*models.TestResult, error)
}

type DashboardService interface {
	ClientDashboard(ctx context.Context, userID string) (*ClientDashboard, error)
	LeaderDashboard(ctx context.Context, leaderID string) (*LeaderDashboard, error)
}

type ReportService interface {
	ExportClientResults(ctx context.Context, userID string) ([]byte, error)
	ExportLeaderResults(ctx context.Context, leaderID string) ([]byte, error)
}

// ===== REQUEST / RESPONSE TYPES =====

// Identity is what the auth layer knows about the caller from the token.
type Identity struct {
	ID        string          `json:"id" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Name      string          `json:"name"`
	Role      models.UserRole `json:"role" validate:"required,user_role"`
	AvatarURL string          `json:"avatar_url,omitempty"`
}

type ClientListRequest struct {
	Search string `json:"search" form:"search" validate:"max=100"`
	Limit  int    `json:"limit" form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `json:"offset" form:"offset" validate:"omitempty,min=0"`
}

type ClientListResponse struct {
	Clients []*models.User `json:"clients"`
	Total   int64          `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

type CreateInvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=100"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

type InvitationListRequest struct {
	Status *models.InvitationStatus `json:"status" form:"status"`
	Limit  int                      `json:"limit" form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int                      `json:"offset" form:"offset" validate:"omitempty,min=0"`
}

type InvitationListResponse struct {
	Invitations []*models.Invitation `json:"invitations"`
	Total       int64                `json:"total"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

type StartSessionRequest struct {
	Kind string `json:"kind" validate:"required,assessment_kind"`
}

type AnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	OptionID   string `json:"option_id" validate:"required"`
}

type ScoreRequest struct {
	Answers scoring.Answers `json:"answers" validate:"required,answer_map"`
}

// SessionResponse is a session plus the question currently on screen.
// Question is nil once the session is completed.
type SessionResponse struct {
	Session  *scoring.Session  `json:"session"`
	Question *scoring.Question `json:"question,omitempty"`
	Total    int               `json:"total"`
	Progress float64           `json:"progress"`
}

type CompletionResponse struct {
	SessionID   string          `json:"session_id"`
	Kind        scoring.Kind    `json:"kind"`
	Dominant    string          `json:"dominant"`
	Percentage  float64         `json:"percentage"`
	Result      *scoring.Result `json:"result"`
	CompletedAt time.Time       `json:"completed_at"`
}

type AssessmentInfo struct {
	Kind          scoring.Kind `json:"kind"`
	Title         string       `json:"title"`
	QuestionCount int          `json:"question_count"`
}

type ResultListRequest struct {
	Kind      *string    `json:"kind" form:"kind" validate:"omitempty,assessment_kind"`
	DateFrom  *time.Time `json:"date_from" form:"date_from" time_format:"2006-01-02"`
	DateTo    *time.Time `json:"date_to" form:"date_to" time_format:"2006-01-02"`
	Limit     int        `json:"limit" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset    int        `json:"offset" form:"offset" validate:"omitempty,min=0"`
	SortBy    string     `json:"sort_by" form:"sort_by" validate:"omitempty,oneof=completed_at percentage"`
	SortOrder string     `json:"sort_order" form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

func (r *ResultListRequest) filters() repositories.ResultFilters {
	if r == nil {
		return repositories.ResultFilters{Limit: defaultPageSize}
	}
	limit := r.Limit
	if limit == 0 {
		limit = defaultPageSize
	}
	return repositories.ResultFilters{
		Kind:      r.Kind,
		DateFrom:  r.DateFrom,
		DateTo:    r.DateTo,
		Limit:     limit,
		Offset:    r.Offset,
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
	}
}

type ResultListResponse struct {
	Results []*models.TestResult `json:"results"`
	Total   int64                `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

type ClientDashboard struct {
	User           *models.User                        `json:"user"`
	Leader         *models.User                        `json:"leader,omitempty"`
	Latest         map[scoring.Kind]*models.TestResult `json:"latest"`
	TotalCompleted int64                               `json:"total_completed"`
	Pending        []scoring.Kind                      `json:"pending"`
}

type LeaderDashboard struct {
	ClientCount        int64                                         `json:"client_count"`
	PendingInvitations int64                                         `json:"pending_invitations"`
	CompletedByKind    map[scoring.Kind]int64                        `json:"completed_by_kind"`
	Distribution       map[scoring.Kind][]repositories.DominantCount `json:"distribution"`
	RecentResults      []*models.TestResult                          `json:"recent_results"`
}

const defaultPageSize = 20
