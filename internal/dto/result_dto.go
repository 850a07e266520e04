package dto

import "time"

// AnswerSnapshotDTO is the stored verdict for one question of a result.
type AnswerSnapshotDTO struct {
	QuestionUID    string `json:"question_uid"`
	SelectedOption int    `json:"selected_option"`
	CorrectAnswer  int    `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// ResultResponseDTO is returned right after a submission is scored.
type ResultResponseDTO struct {
	ID          uint                `json:"id"`
	TestID      uint                `json:"test_id"`
	StudentID   uint                `json:"student_id"`
	Answers     []AnswerSnapshotDTO `json:"answers"`
	Score       float64             `json:"score"`
	TotalMarks  float64             `json:"total_marks"`
	SubmittedAt time.Time           `json:"submitted_at"`
}

// AnswerReviewDTO joins a stored verdict with the question's current content.
// The verdict fields come from the snapshot; the wording is live.
type AnswerReviewDTO struct {
	QuestionUID    string           `json:"question_uid"`
	Question       LocalizedTextDTO `json:"question"`
	Description    LocalizedTextDTO `json:"description"`
	Options        []OptionDTO      `json:"options"`
	SelectedOption int              `json:"student_answer"`
	CorrectAnswer  int              `json:"correct_answer"`
	IsCorrect      bool             `json:"is_correct"`
}

// DetailedResultDTO is the student-facing report for one test.
type DetailedResultDTO struct {
	ID            uint              `json:"id"`
	TestID        uint              `json:"test_id"`
	TestTitle     string            `json:"test_title"`
	Score         float64           `json:"score"`
	TotalMarks    float64           `json:"total_marks"`
	Percentage    string            `json:"percentage"`
	Rank          int               `json:"rank,omitempty"`
	TotalStudents int               `json:"total_students"`
	SubmittedAt   time.Time         `json:"submitted_at"`
	Questions     []AnswerReviewDTO `json:"questions"`
}

// RankedResultDTO is one entry of a student's result history, ranked within
// its own test.
type RankedResultDTO struct {
	ID            uint      `json:"id"`
	TestID        uint      `json:"test_id"`
	TestTitle     string    `json:"test_title"`
	Score         float64   `json:"score"`
	TotalMarks    float64   `json:"total_marks"`
	Percentage    string    `json:"percentage"`
	Rank          int       `json:"rank"`
	TotalStudents int       `json:"total_students"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
