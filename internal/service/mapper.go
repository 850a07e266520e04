package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/model"
)

func toQuestionResponse(q *model.Question) dto.QuestionResponseDTO {
	var resp dto.QuestionResponseDTO
	copier.Copy(&resp, q)
	resp.Tags = make([]dto.TagDTO, len(q.Tags))
	for i, t := range q.Tags {
		resp.Tags[i] = dto.TagDTO{ID: t.ID, Label: t.Label}
	}
	return resp
}

func toStudentQuestion(q *model.Question) dto.StudentQuestionDTO {
	var resp dto.StudentQuestionDTO
	copier.Copy(&resp, q)
	return resp
}

func toQuestionRef(q *model.Question) dto.QuestionRefDTO {
	return dto.QuestionRefDTO{
		UID:      q.UID,
		Question: dto.LocalizedTextDTO{English: q.Question.English, Hindi: q.Question.Hindi},
	}
}

func toTestSummary(t *model.Test, refs []dto.QuestionRefDTO, now time.Time) dto.TestSummaryDTO {
	return dto.TestSummaryDTO{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		StartTime:        t.StartTime,
		Duration:         t.DurationMinutes,
		EndTime:          t.EndTime(),
		Status:           t.Status(now),
		MarksPerQuestion: t.MarksPerQuestion,
		NegativeMarks:    t.NegativeMarks,
		TotalMarks:       t.TotalMarks(),
		QuestionCount:    len(t.Questions),
		Questions:        refs,
	}
}

func toResultResponse(r *model.Result) dto.ResultResponseDTO {
	var resp dto.ResultResponseDTO
	copier.Copy(&resp, r)
	resp.Answers = make([]dto.AnswerSnapshotDTO, len(r.Answers))
	for i, a := range r.Answers {
		resp.Answers[i] = dto.AnswerSnapshotDTO{
			QuestionUID:    a.QuestionUID,
			SelectedOption: a.SelectedOption,
			CorrectAnswer:  a.CorrectAnswer,
			IsCorrect:      a.IsCorrect,
		}
	}
	return resp
}

// formatPercentage renders score/total as a percentage with two decimals.
// A zero-mark test reports "0.00" instead of dividing by zero.
func formatPercentage(score, totalMarks float64) string {
	if totalMarks == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", score/totalMarks*100)
}
