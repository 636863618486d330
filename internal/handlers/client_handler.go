package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	BaseHandler
	userService services.UserService
}

func NewClientHandler(userService services.UserService, logger utils.Logger) *ClientHandler {
	return &ClientHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// ListClients lists the clients linked to the caller
// @Router /leader/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	leaderID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req services.ClientListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "Invalid query parameters", err.Error())
		return
	}

	resp, err := h.userService.ListClients(c.Request.Context(), leaderID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
