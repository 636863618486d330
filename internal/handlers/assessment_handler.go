package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
	"github.com/gin-gonic/gin"
)

// AssessmentHandler serves the static question banks and stateless scoring.
type AssessmentHandler struct {
	BaseHandler
	scoringService services.ScoringService
	validator      *validator.Validator
}

func NewAssessmentHandler(
	scoringService services.ScoringService,
	validator *validator.Validator,
	logger utils.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:    NewBaseHandler(logger),
		scoringService: scoringService,
		validator:      validator,
	}
}

// ListAssessments lists the available assessments
// @Router /assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"assessments": h.scoringService.Kinds()})
}

// GetQuestions returns the question bank of one assessment
// @Router /assessments/{kind}/questions [get]
func (h *AssessmentHandler) GetQuestions(c *gin.Context) {
	kind := scoring.Kind(c.Param("kind"))

	questions, err := h.scoringService.Questions(kind)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":      kind,
		"title":     kind.Title(),
		"questions": questions,
	})
}

// ScoreAnswers scores a full answer map without creating a session
// @Router /assessments/{kind}/score [post]
func (h *AssessmentHandler) ScoreAnswers(c *gin.Context) {
	kind := scoring.Kind(c.Param("kind"))

	var req services.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Scoring answers", "kind", kind, "answers", len(req.Answers))

	result, err := h.scoringService.Score(c.Request.Context(), kind, req.Answers)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
