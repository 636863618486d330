package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/cache"
	"github.com/SAP-F-2025/behavioral-assessment/internal/events"
	"github.com/SAP-F-2025/behavioral-assessment/internal/metrics"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
)

// ServiceManager hands out the services to the HTTP layer.
type ServiceManager interface {
	User() UserService
	Invitation() InvitationService
	Session() SessionService
	Scoring() ScoringService
	Result() ResultService
	Dashboard() DashboardService
	Report() ReportService
}

type ManagerConfig struct {
	SessionTTL    time.Duration
	InvitationTTL time.Duration
}

type serviceManager struct {
	user       UserService
	invitation InvitationService
	session    SessionService
	scoring    ScoringService
	result     ResultService
	dashboard  DashboardService
	report     ReportService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	validator *validator.Validator,
	cfg ManagerConfig,
) ServiceManager {
	results := NewResultService(repo, logger, validator)
	return &serviceManager{
		user:       NewUserService(repo, logger, validator),
		invitation: NewInvitationService(repo, cacheService, eventPublisher, m, logger, validator, cfg.InvitationTTL),
		session:    NewSessionService(repo, cacheService, eventPublisher, m, logger, cfg.SessionTTL),
		scoring:    NewScoringService(m, logger),
		result:     results,
		dashboard:  NewDashboardService(repo, cacheService, logger),
		report:     NewReportService(results, logger),
	}
}

func (sm *serviceManager) User() UserService             { return sm.user }
func (sm *serviceManager) Invitation() InvitationService { return sm.invitation }
func (sm *serviceManager) Session() SessionService       { return sm.session }
func (sm *serviceManager) Scoring() ScoringService       { return sm.scoring }
func (sm *serviceManager) Result() ResultService         { return sm.result }
func (sm *serviceManager) Dashboard() DashboardService   { return sm.dashboard }
func (sm *serviceManager) Report() ReportService         { return sm.report }
