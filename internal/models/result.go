package models

import (
	"time"

	"gorm.io/datatypes"
)

// TestResult is one persisted assessment outcome. Rows are append-only; a
// retake inserts a new row.
type TestResult struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	UserID     string  `json:"user_id" gorm:"not null;size:255;index:idx_results_user_kind"`
	Kind       string  `json:"kind" gorm:"not null;size:32;index:idx_results_user_kind"`
	SessionID  string  `json:"session_id" gorm:"uniqueIndex;size:64"`
	Dominant   string  `json:"dominant" gorm:"size:64;index"`
	Percentage float64 `json:"percentage"`

	Answers datatypes.JSON `json:"answers" gorm:"type:jsonb"` // scoring.Answers
	Scores  datatypes.JSON `json:"scores" gorm:"type:jsonb"`  // scoring.Result

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (TestResult) TableName() string {
	return "test_results"
}

// AllModels lists the tables managed by the migrate command.
func AllModels() []interface{} {
	return []interface{}{&User{}, &Invitation{}, &TestResult{}}
}
