package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/xuri/excelize/v2"
)

// reportPageSize bounds a single export query.
const reportPageSize = 1000

var reportSheets = map[scoring.Kind]string{
	scoring.KindAnimalProfile: "Perfil Animal",
	scoring.KindEgogram:       "Egograma",
	scoring.KindProactivity:   "Proatividade",
}

var (
	animalReportProfiles = []scoring.Profile{
		scoring.ProfileEagle, scoring.ProfileWolf, scoring.ProfileDolphin, scoring.ProfileOwl,
	}
	egogramReportStates = []scoring.EgoState{
		scoring.EgoCriticalParent, scoring.EgoNurturingParent, scoring.EgoAdult,
		scoring.EgoFreeChild, scoring.EgoAdaptedChild,
	}
)

type reportService struct {
	results ResultService
	logger  *slog.Logger
}

func NewReportService(results ResultService, logger *slog.Logger) ReportService {
	return &reportService{
		results: results,
		logger:  logger,
	}
}

func (s *reportService) ExportClientResults(ctx context.Context, userID string) ([]byte, error) {
	list, err := s.results.ListByUser(ctx, userID, &ResultListRequest{Limit: reportPageSize, SortBy: "completed_at", SortOrder: "desc"})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Exporting client results", "user_id", userID, "rows", len(list.Results))
	return s.buildWorkbook(list.Results, false)
}

func (s *reportService) ExportLeaderResults(ctx context.Context, leaderID string) ([]byte, error) {
	list, err := s.results.ListByLeader(ctx, leaderID, &ResultListRequest{Limit: reportPageSize, SortBy: "completed_at", SortOrder: "desc"})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Exporting leader results", "leader_id", leaderID, "rows", len(list.Results), "total", list.Total)
	return s.buildWorkbook(list.Results, true)
}

// buildWorkbook writes one sheet per assessment kind. Sheets exist even when
// a kind has no results so that consumers can rely on the layout.
func (s *reportService) buildWorkbook(results []*models.TestResult, withClient bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	byKind := make(map[scoring.Kind][]*models.TestResult)
	for _, r := range results {
		byKind[scoring.Kind(r.Kind)] = append(byKind[scoring.Kind(r.Kind)], r)
	}

	for i, kind := range scoring.Kinds() {
		sheetName := reportSheets[kind]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheetName); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheetName); err != nil {
			return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
		}

		headers := reportHeaders(kind, withClient)
		for col, header := range headers {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, header); err != nil {
				return nil, fmt.Errorf("failed to write header: %w", err)
			}
		}

		for rowIndex, result := range byKind[kind] {
			row, err := s.reportRow(kind, result, withClient)
			if err != nil {
				return nil, err
			}
			cell, err := excelize.CoordinatesToCellName(1, rowIndex+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func reportHeaders(kind scoring.Kind, withClient bool) []string {
	var headers []string
	if withClient {
		headers = append(headers, "Cliente", "Email")
	}
	headers = append(headers, "Concluído em", "Resultado", "Percentual")

	switch kind {
	case scoring.KindAnimalProfile:
		for _, p := range animalReportProfiles {
			headers = append(headers, string(p))
		}
		headers = append(headers, "Pontos")
	case scoring.KindEgogram:
		for _, e := range egogramReportStates {
			headers = append(headers, e.Label())
		}
	case scoring.KindProactivity:
		headers = append(headers, "Pontuação", "Máximo", "Nível")
	}
	return headers
}

func (s *reportService) reportRow(kind scoring.Kind, r *models.TestResult, withClient bool) ([]interface{}, error) {
	var row []interface{}
	if withClient {
		row = append(row, r.User.FullName, r.User.Email)
	}
	row = append(row, r.CompletedAt.Format("2006-01-02 15:04"), r.Dominant, r.Percentage)

	var scores scoring.Result
	if len(r.Scores) > 0 {
		if err := json.Unmarshal(r.Scores, &scores); err != nil {
			return nil, fmt.Errorf("failed to decode scores of result %d: %w", r.ID, err)
		}
	}

	switch kind {
	case scoring.KindAnimalProfile:
		byProfile := map[scoring.Profile]float64{}
		var total float64
		if scores.Animal != nil {
			for _, ps := range scores.Animal.ProfileScores {
				byProfile[ps.Profile] = ps.Score
			}
			total = scores.Animal.TotalPoints
		}
		for _, p := range animalReportProfiles {
			row = append(row, byProfile[p])
		}
		row = append(row, total)
	case scoring.KindEgogram:
		for _, e := range egogramReportStates {
			var v float64
			if scores.Egogram != nil {
				v = scores.Egogram.Scores[e]
			}
			row = append(row, v)
		}
	case scoring.KindProactivity:
		if scores.Proactivity != nil {
			row = append(row, scores.Proactivity.Score, scores.Proactivity.MaxScore, scores.Proactivity.Level)
		} else {
			row = append(row, 0.0, 0.0, r.Dominant)
		}
	}
	return row, nil
}
