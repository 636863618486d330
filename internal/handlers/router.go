package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/behavioral-assessment/internal/auth"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	assessmentHandler *AssessmentHandler
	sessionHandler    *SessionHandler
	resultHandler     *ResultHandler
	invitationHandler *InvitationHandler
	dashboardHandler  *DashboardHandler
	clientHandler     *ClientHandler

	authMiddleware gin.HandlerFunc
	metricsHandler http.Handler
}

// NewHandlerManager builds every handler from the service manager.
// metricsHandler may be nil, in which case /metrics is not registered.
func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	parser auth.TokenParser,
	metricsHandler http.Handler,
) *HandlerManager {
	return &HandlerManager{
		assessmentHandler: NewAssessmentHandler(serviceManager.Scoring(), validator, logger),
		sessionHandler:    NewSessionHandler(serviceManager.Session(), validator, logger),
		resultHandler:     NewResultHandler(serviceManager.Result(), serviceManager.Report(), validator, logger),
		invitationHandler: NewInvitationHandler(serviceManager.Invitation(), validator, logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Dashboard(), logger),
		clientHandler:     NewClientHandler(serviceManager.User(), logger),
		authMiddleware:    auth.Middleware(parser, serviceManager.User(), logger),
		metricsHandler:    metricsHandler,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)
	if hm.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(hm.metricsHandler))
	}

	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware)
	{
		assessments := v1.Group("/assessments")
		{
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/:kind/questions", hm.assessmentHandler.GetQuestions)
			assessments.POST("/:kind/score", hm.assessmentHandler.ScoreAnswers)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/answer", hm.sessionHandler.AnswerQuestion)
			sessions.POST("/:id/next", hm.sessionHandler.NextQuestion)
			sessions.POST("/:id/previous", hm.sessionHandler.PreviousQuestion)
			sessions.POST("/:id/complete", hm.sessionHandler.CompleteSession)
			sessions.POST("/:id/retake", hm.sessionHandler.RetakeSession)
		}

		results := v1.Group("/results")
		{
			results.GET("", hm.resultHandler.ListResults)
			results.GET("/export", hm.resultHandler.ExportResults)
			results.GET("/:id", hm.resultHandler.GetResult)
		}

		v1.GET("/dashboard", hm.dashboardHandler.GetDashboard)

		// Accepting is open to any authenticated user.
		v1.POST("/invitations/accept", hm.invitationHandler.AcceptInvitation)

		invitations := v1.Group("/invitations", auth.RequireRole(models.RoleLeader, models.RoleAdmin))
		{
			invitations.POST("", hm.invitationHandler.CreateInvitation)
			invitations.GET("", hm.invitationHandler.ListInvitations)
			invitations.DELETE("/:id", hm.invitationHandler.RevokeInvitation)
		}

		leader := v1.Group("/leader", auth.RequireRole(models.RoleLeader, models.RoleAdmin))
		{
			leader.GET("/clients", hm.clientHandler.ListClients)
			leader.GET("/results", hm.resultHandler.ListLeaderResults)
			leader.GET("/results/export", hm.resultHandler.ExportLeaderResults)
		}
	}
}
