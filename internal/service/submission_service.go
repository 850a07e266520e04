package service

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/model"
	"github.com/sahajm/Civet/internal/repository"
	"gorm.io/gorm"
)

// SubmissionService scores a student's one-shot answer set and persists the
// immutable Result.
type SubmissionService interface {
	SubmitAnswers(testID, studentID uint, req dto.SubmitAnswersDTO, now time.Time) (*dto.ResultResponseDTO, error)
}

type submissionService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
) SubmissionService {
	return &submissionService{testRepo: testRepo, questionRepo: questionRepo, resultRepo: resultRepo}
}

func (s *submissionService) SubmitAnswers(testID, studentID uint, req dto.SubmitAnswersDTO, now time.Time) (*dto.ResultResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: test not found", apperr.ErrNotFound)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("SubmitAnswers: test load failed")
		return nil, apperr.Errorf("%w: failed to load test", apperr.ErrUpstream)
	}

	hasResult, err := s.hasResult(testID, studentID)
	if err != nil {
		return nil, err
	}
	if err := ValidateAccess(test, model.RoleStudent, hasResult, now); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindByUIDs(test.QuestionUIDs())
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("SubmitAnswers: question hydration failed")
		return nil, apperr.Errorf("%w: failed to load questions", apperr.ErrUpstream)
	}

	result := ScoreSubmission(test, questions, req.Answers, studentID, now)

	if err := s.resultRepo.Create(result); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent submission; the unique
			// index on (test_id, student_id) is the source of truth.
			return nil, apperr.ErrDuplicateSubmission
		}
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("SubmitAnswers: result insert failed")
		return nil, apperr.Errorf("%w: failed to save result", apperr.ErrUpstream)
	}

	log.Info().Uint("testID", testID).Uint("studentID", studentID).
		Float64("score", result.Score).Float64("totalMarks", result.TotalMarks).
		Msg("submission scored")

	resp := toResultResponse(result)
	return &resp, nil
}

// ScoreSubmission computes the verdict for every question of the test.
// Questions are resolved through a uid-keyed map built once, so the pass is
// linear in questions plus answers. Skipped questions score zero without
// error; an answer whose uid is not in the test's question set is marked
// incorrect with an unknown-answer snapshot rather than rejected.
// NegativeMarks is stored on the test but deliberately not subtracted here.
func ScoreSubmission(test *model.Test, questions []model.Question, answers []dto.AnswerSubmitDTO, studentID uint, now time.Time) *model.Result {
	byUID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byUID[q.UID] = q
	}

	var score float64
	answered := make(map[string]struct{}, len(answers))
	rows := make([]model.ResultAnswer, 0, len(test.Questions))

	for _, ans := range answers {
		if _, dup := answered[ans.QuestionUID]; dup {
			continue // first answer wins on duplicates
		}
		answered[ans.QuestionUID] = struct{}{}

		selected := model.SelectedOptionNone
		if ans.SelectedOption != nil {
			selected = *ans.SelectedOption
		}

		question, inTest := byUID[ans.QuestionUID]
		if !inTest {
			rows = append(rows, model.ResultAnswer{
				QuestionUID:    ans.QuestionUID,
				SelectedOption: selected,
				CorrectAnswer:  model.CorrectAnswerUnknown,
				IsCorrect:      false,
			})
			continue
		}

		isCorrect := selected == question.CorrectAnswer
		if isCorrect {
			score += test.MarksPerQuestion
		}
		rows = append(rows, model.ResultAnswer{
			QuestionUID:    ans.QuestionUID,
			SelectedOption: selected,
			CorrectAnswer:  question.CorrectAnswer,
			IsCorrect:      isCorrect,
		})
	}

	// Unanswered questions still get a snapshot row, marked incorrect.
	for _, tq := range test.Questions {
		if _, ok := answered[tq.QuestionUID]; ok {
			continue
		}
		correct := model.CorrectAnswerUnknown
		if q, inStore := byUID[tq.QuestionUID]; inStore {
			correct = q.CorrectAnswer
		}
		rows = append(rows, model.ResultAnswer{
			QuestionUID:    tq.QuestionUID,
			SelectedOption: model.SelectedOptionNone,
			CorrectAnswer:  correct,
			IsCorrect:      false,
		})
	}

	return &model.Result{
		TestID:      test.ID,
		StudentID:   studentID,
		Answers:     rows,
		Score:       score,
		TotalMarks:  test.TotalMarks(),
		SubmittedAt: now,
	}
}

func (s *submissionService) hasResult(testID, studentID uint) (bool, error) {
	_, err := s.resultRepo.FindByTestAndStudent(testID, studentID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("result existence check failed")
	return false, apperr.Errorf("%w: result lookup failed", apperr.ErrUpstream)
}
