package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/behavioral-assessment/internal/metrics"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
)

type scoringService struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewScoringService serves the question banks and scores answers kept on the
// client side. Nothing is persisted.
func NewScoringService(m *metrics.Metrics, logger *slog.Logger) ScoringService {
	return &scoringService{
		metrics: m,
		logger:  logger,
	}
}

func (s *scoringService) Kinds() []AssessmentInfo {
	kinds := scoring.Kinds()
	infos := make([]AssessmentInfo, 0, len(kinds))
	for _, kind := range kinds {
		questions, _ := scoring.Questions(kind)
		infos = append(infos, AssessmentInfo{
			Kind:          kind,
			Title:         kind.Title(),
			QuestionCount: len(questions),
		})
	}
	return infos
}

func (s *scoringService) Questions(kind scoring.Kind) ([]scoring.Question, error) {
	return scoring.Questions(kind)
}

func (s *scoringService) Score(ctx context.Context, kind scoring.Kind, answers scoring.Answers) (*scoring.Result, error) {
	result, err := scoring.Score(kind, answers)
	if err != nil {
		return nil, err
	}
	if result.Degenerate() {
		s.logger.DebugContext(ctx, "Rejected degenerate score", "kind", kind, "answers", len(answers))
		return nil, NewBusinessRuleError("degenerate_result", "answers do not produce a valid score",
			map[string]interface{}{"kind": kind, "answered": len(answers)})
	}

	s.metrics.ObserveScored(string(kind), result.Dominant(), result.Percentage())
	return result, nil
}
