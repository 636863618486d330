package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/behavioral-assessment/internal/auth"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the leader dashboard for leaders and admins and the
// client dashboard for everyone else.
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var (
		dashboard interface{}
		err       error
	)
	switch auth.Role(c) {
	case models.RoleLeader, models.RoleAdmin:
		dashboard, err = h.dashboardService.LeaderDashboard(c.Request.Context(), userID)
	default:
		dashboard, err = h.dashboardService.ClientDashboard(c.Request.Context(), userID)
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
