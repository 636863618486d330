package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	BaseHandler
	invitationService services.InvitationService
	validator         *validator.Validator
}

func NewInvitationHandler(
	invitationService services.InvitationService,
	validator *validator.Validator,
	logger utils.Logger,
) *InvitationHandler {
	return &InvitationHandler{
		BaseHandler:       NewBaseHandler(logger),
		invitationService: invitationService,
		validator:         validator,
	}
}

// CreateInvitation invites a client by email
// @Router /invitations [post]
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	leaderID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req services.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err.Error())
		return
	}

	h.LogRequest(c, "Creating invitation")

	invitation, err := h.invitationService.Invite(c.Request.Context(), leaderID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

// ListInvitations lists the caller's invitations
// @Router /invitations [get]
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	leaderID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req services.InvitationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "Invalid query parameters", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp, err := h.invitationService.ListByLeader(c.Request.Context(), leaderID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AcceptInvitation links the caller to the inviting leader
// @Router /invitations/accept [post]
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	clientID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req services.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err.Error())
		return
	}

	invitation, err := h.invitationService.Accept(c.Request.Context(), req.Token, clientID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitation)
}

// RevokeInvitation revokes a pending invitation
// @Router /invitations/{id} [delete]
func (h *InvitationHandler) RevokeInvitation(c *gin.Context) {
	leaderID, ok := h.requireUser(c)
	if !ok {
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.invitationService.Revoke(c.Request.Context(), id, leaderID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
