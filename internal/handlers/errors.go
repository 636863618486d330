package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/gin-gonic/gin"
)

// sentinelStatus maps errors that need a status other than the one their
// class gets in handleServiceError. Order matters: the first match wins.
var sentinelStatus = []struct {
	err    error
	status int
	code   string
}{
	{scoring.ErrUnknownKind, http.StatusBadRequest, "unknown_kind"},
	{scoring.ErrQuestionMismatch, http.StatusBadRequest, "question_mismatch"},
	{scoring.ErrUnknownOption, http.StatusBadRequest, "unknown_option"},
	{scoring.ErrNoAnswer, http.StatusConflict, "no_answer"},
	{scoring.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{scoring.ErrSessionNotComplete, http.StatusConflict, "session_incomplete"},
	{services.ErrInvitationExpired, http.StatusGone, "invitation_expired"},
	{services.ErrInvitationSelf, http.StatusUnprocessableEntity, "self_invitation"},
}

// handleServiceError maps service errors to HTTP responses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.respondError(c, http.StatusBadRequest, "validation_failed", "Validation failed", err, gin.H{
			"fields": validationErrors.Fields(),
			"errors": validationErrors,
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.respondError(c, http.StatusUnprocessableEntity, "business_rule", businessRuleError.Message, err, gin.H{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		h.respondError(c, http.StatusForbidden, "forbidden", "Access denied", err, gin.H{
			"resource": permissionError.Resource,
			"action":   permissionError.Action,
			"reason":   permissionError.Reason,
		})
		return
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			h.respondError(c, s.status, s.code, s.err.Error(), err, nil)
			return
		}
	}

	switch {
	case services.IsNotFound(err):
		h.respondError(c, http.StatusNotFound, "not_found", err.Error(), err, nil)
	case services.IsUnauthorized(err):
		h.respondError(c, http.StatusForbidden, "forbidden", "Access denied", err, nil)
	case services.IsConflict(err):
		h.respondError(c, http.StatusConflict, "conflict", err.Error(), err, nil)
	default:
		h.LogError(c, err, "Unhandled service error", "error_details", services.FormatError(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "internal",
			Message: "Internal server error",
		})
	}
}
