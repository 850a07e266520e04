package dto

import "time"

// TestSummaryDTO lists a test with schedule metadata and lightweight
// question references only.
type TestSummaryDTO struct {
	ID               uint             `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	StartTime        time.Time        `json:"start_time"`
	Duration         int              `json:"duration"`
	EndTime          time.Time        `json:"end_time"`
	Status           string           `json:"status"`
	MarksPerQuestion float64          `json:"marks_per_question"`
	NegativeMarks    float64          `json:"negative_marks"`
	TotalMarks       float64          `json:"total_marks"`
	QuestionCount    int              `json:"question_count"`
	Questions        []QuestionRefDTO `json:"questions,omitempty"`
}

// TestDetailDTO is what a validated student receives to take the test.
type TestDetailDTO struct {
	ID               uint                 `json:"id"`
	Title            string               `json:"title"`
	Description      string               `json:"description,omitempty"`
	StartTime        time.Time            `json:"start_time"`
	Duration         int                  `json:"duration"`
	EndTime          time.Time            `json:"end_time"`
	Status           string               `json:"status"`
	MarksPerQuestion float64              `json:"marks_per_question"`
	NegativeMarks    float64              `json:"negative_marks"`
	TotalMarks       float64              `json:"total_marks"`
	Questions        []StudentQuestionDTO `json:"questions"`
}

// AdminTestDTO is the full test shape for its creator, questions with
// correct answers and tags included.
type AdminTestDTO struct {
	ID               uint                  `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description,omitempty"`
	StartTime        time.Time             `json:"start_time"`
	Duration         int                   `json:"duration"`
	EndTime          time.Time             `json:"end_time"`
	Status           string                `json:"status"`
	MarksPerQuestion float64               `json:"marks_per_question"`
	NegativeMarks    float64               `json:"negative_marks"`
	TotalMarks       float64               `json:"total_marks"`
	IsActive         bool                  `json:"is_active"`
	QuestionUIDs     []string              `json:"question_uids"`
	Questions        []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedBy        *UserResponseDTO      `json:"created_by,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}
