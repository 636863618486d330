package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
	reportService services.ReportService
	validator     *validator.Validator
}

func NewResultHandler(
	resultService services.ResultService,
	reportService services.ReportService,
	validator *validator.Validator,
	logger utils.Logger,
) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
		reportService: reportService,
		validator:     validator,
	}
}

// ListResults lists the caller's own results
// @Router /results [get]
func (h *ResultHandler) ListResults(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	resp, err := h.resultService.ListByUser(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetResult returns a single result
// @Router /results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	result, err := h.resultService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportResults downloads the caller's results as a workbook
// @Router /results/export [get]
func (h *ResultHandler) ExportResults(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting client results")

	data, err := h.reportService.ExportClientResults(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondWithWorkbook(c, exportFilename("resultados"), data)
}

// ListLeaderResults lists the results of every client of the caller
// @Router /leader/results [get]
func (h *ResultHandler) ListLeaderResults(c *gin.Context) {
	leaderID, ok := h.requireUser(c)
	if !ok {
		return
	}

	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	resp, err := h.resultService.ListByLeader(c.Request.Context(), leaderID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportLeaderResults downloads all client results as a workbook
// @Router /leader/results/export [get]
func (h *ResultHandler) ExportLeaderResults(c *gin.Context) {
	leaderID, ok := h.requireUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting leader results")

	data, err := h.reportService.ExportLeaderResults(c.Request.Context(), leaderID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondWithWorkbook(c, exportFilename("resultados-clientes"), data)
}

func (h *ResultHandler) bindListRequest(c *gin.Context) (*services.ResultListRequest, bool) {
	var req services.ResultListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "Invalid query parameters", err.Error())
		return nil, false
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	return &req, true
}

func exportFilename(prefix string) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, time.Now().Format("2006-01-02"))
}
