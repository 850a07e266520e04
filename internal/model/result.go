package model

import (
	"time"
)

// SelectedOptionNone marks a question the student never answered;
// CorrectAnswerUnknown marks an answer whose question was not part of the
// test's question set at scoring time.
const (
	SelectedOptionNone   = -1
	CorrectAnswerUnknown = -1
)

// ResultAnswer snapshots the verdict for one question at submission time.
// Later edits to question content never change these rows.
type ResultAnswer struct {
	ID             uint   `gorm:"primarykey" json:"-"`
	ResultID       uint   `json:"-" gorm:"not null;index"`
	QuestionUID    string `json:"question_uid" gorm:"not null"`
	SelectedOption int    `json:"selected_option"`
	CorrectAnswer  int    `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// Result is created exactly once per (test, student) and never mutated.
// The composite unique index enforces at-most-once at the storage layer, so
// two racing submissions cannot both insert.
type Result struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	TestID      uint           `json:"test_id" gorm:"not null;uniqueIndex:idx_results_test_student"`
	Test        Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StudentID   uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_results_test_student"`
	Student     User           `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Answers     []ResultAnswer `json:"answers" gorm:"foreignKey:ResultID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Score       float64        `json:"score"`
	TotalMarks  float64        `json:"total_marks"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
}
