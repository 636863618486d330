package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/behavioral-assessment/internal/auth"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx answer. Code is stable and
// meant for clients to branch on; Message is for people.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the logger and the response helpers shared by every
// resource handler.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// requestLogger prefers the request scoped logger installed by
// utils.ContextLogger.
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger).With("user_id", auth.UserID(c))
}

// LogRequest records a state-changing call before it reaches the services.
func (h *BaseHandler) LogRequest(c *gin.Context, message string, fields ...interface{}) {
	h.requestLogger(c).Info(message, append([]interface{}{"remote_addr", c.ClientIP()}, fields...)...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, fields ...interface{}) {
	h.requestLogger(c).LogError(err, message, fields...)
}

// respondError writes an ErrorResponse. Server errors are logged with the
// cause, client errors at warn without it.
func (h *BaseHandler) respondError(c *gin.Context, status int, code, message string, err error, details interface{}) {
	if err != nil && status >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", status, "code", code)
	} else {
		h.requestLogger(c).Warn(message, "status_code", status, "code", code)
	}
	c.JSON(status, ErrorResponse{Code: code, Message: message, Details: details})
}

// badRequest answers 400 for malformed input caught in the handler itself.
func (h *BaseHandler) badRequest(c *gin.Context, message string, details interface{}) {
	h.respondError(c, http.StatusBadRequest, "bad_request", message, nil, details)
}

// requireUser returns the authenticated user id or writes a 401.
func (h *BaseHandler) requireUser(c *gin.Context) (string, bool) {
	userID := auth.UserID(c)
	if userID == "" {
		h.respondError(c, http.StatusUnauthorized, "unauthenticated", "User not authenticated", nil, nil)
		return "", false
	}
	return userID, true
}

// parseIDParam reads a positive numeric path parameter, writing a 400 and
// returning 0 when it is not one.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		h.badRequest(c, "Invalid "+param, param+" must be a positive integer")
		return 0
	}
	return uint(id)
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "behavioral-assessment",
	})
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func respondWithWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
