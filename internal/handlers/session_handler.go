package handlers

import (
	"context"
	"net/http"

	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
	validator      *validator.Validator
}

func NewSessionHandler(
	sessionService services.SessionService,
	validator *validator.Validator,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
		validator:      validator,
	}
}

// StartSession starts a new question-by-question session
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Starting session", "kind", req.Kind)

	resp, err := h.sessionService.Start(c.Request.Context(), userID, scoring.Kind(req.Kind))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetSession returns the session and its current question
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	resp, err := h.sessionService.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AnswerQuestion records the answer to the current question
// @Router /sessions/{id}/answer [post]
func (h *SessionHandler) AnswerQuestion(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp, err := h.sessionService.Answer(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// NextQuestion advances, completing the session after the last question
// @Router /sessions/{id}/next [post]
func (h *SessionHandler) NextQuestion(c *gin.Context) {
	h.move(c, h.sessionService.Next)
}

// PreviousQuestion steps back one question
// @Router /sessions/{id}/previous [post]
func (h *SessionHandler) PreviousQuestion(c *gin.Context) {
	h.move(c, h.sessionService.Previous)
}

// RetakeSession discards the session and starts a fresh one of the same kind
// @Router /sessions/{id}/retake [post]
func (h *SessionHandler) RetakeSession(c *gin.Context) {
	h.move(c, h.sessionService.Retake)
}

func (h *SessionHandler) move(c *gin.Context, fn func(ctx context.Context, sessionID, userID string) (*services.SessionResponse, error)) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	resp, err := fn(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CompleteSession scores the session
// @Router /sessions/{id}/complete [post]
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Completing session", "session_id", c.Param("id"))

	resp, err := h.sessionService.Complete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
