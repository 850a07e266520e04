package dto

import "time"

type LocalizedTextDTO struct {
	English string `json:"english"`
	Hindi   string `json:"hindi"`
}

type OptionDTO struct {
	OrderIndex int              `json:"order_index"`
	Text       LocalizedTextDTO `json:"text"`
}

type TagDTO struct {
	ID    uint   `json:"id"`
	Label string `json:"tag"`
}

// QuestionResponseDTO is the full question shape, including the correct
// answer. Admin-facing and post-submission views only.
type QuestionResponseDTO struct {
	UID           string           `json:"uid"`
	Question      LocalizedTextDTO `json:"question"`
	Description   LocalizedTextDTO `json:"description"`
	Options       []OptionDTO      `json:"options"`
	CorrectAnswer int              `json:"correct_answer"`
	Tags          []TagDTO         `json:"tags,omitempty"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
}

// QuestionRefDTO is the lightweight reference used in test listings before a
// submission exists: no options, no correct answer.
type QuestionRefDTO struct {
	UID      string           `json:"uid"`
	Question LocalizedTextDTO `json:"question"`
}

// StudentQuestionDTO is shown to a student taking a test: options included,
// correct answer withheld.
type StudentQuestionDTO struct {
	UID         string           `json:"uid"`
	Question    LocalizedTextDTO `json:"question"`
	Description LocalizedTextDTO `json:"description"`
	Options     []OptionDTO      `json:"options"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
