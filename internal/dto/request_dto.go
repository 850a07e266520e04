package dto

import "time"

// LocalizedTextInput carries a bilingual text pair on input. Hindi is
// optional and falls back to English server-side.
type LocalizedTextInput struct {
	English string `json:"english" binding:"required"`
	Hindi   string `json:"hindi"`
}

// QuestionCreateDTO is one question within a batch create request.
type QuestionCreateDTO struct {
	Question      LocalizedTextInput   `json:"question" binding:"required"`
	Description   *LocalizedTextInput  `json:"description"`
	Options       []LocalizedTextInput `json:"options" binding:"required,min=2,dive"`
	CorrectAnswer int                  `json:"correct_answer" binding:"min=0"`
	TagIDs        []uint               `json:"tags"`
}

// QuestionBatchCreateDTO is the admin request for batch question authoring.
type QuestionBatchCreateDTO struct {
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TestCreateDTO is the admin request to create or replace a test definition.
type TestCreateDTO struct {
	Title            string    `json:"title" binding:"required"`
	Description      string    `json:"description"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	Duration         int       `json:"duration" binding:"required,min=1"` // minutes
	MarksPerQuestion float64   `json:"marks_per_question" binding:"min=0"`
	NegativeMarks    float64   `json:"negative_marks" binding:"min=0"`
	QuestionUIDs     []string  `json:"question_uids" binding:"required,min=1,dive,required"`
	IsActive         *bool     `json:"is_active"`
}

// AnswerSubmitDTO is a single answer within a test submission.
type AnswerSubmitDTO struct {
	QuestionUID    string `json:"question_uid" binding:"required"`
	SelectedOption *int   `json:"selected_option" binding:"required"`
}

// SubmitAnswersDTO is the student's one-shot submission for a test.
type SubmitAnswersDTO struct {
	Answers []AnswerSubmitDTO `json:"answers" binding:"required,dive"`
}

type TagCreateDTO struct {
	Label string `json:"tag" binding:"required"`
}
