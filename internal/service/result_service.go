package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/model"
	"github.com/sahajm/Civet/internal/repository"
	"gorm.io/gorm"
)

type ResultService interface {
	GetStudentTestResult(testID, studentID uint) (*dto.DetailedResultDTO, error)
	GetStudentResults(studentID uint) ([]dto.RankedResultDTO, error)
	GetResultByID(id, principalID uint, role string) (*dto.ResultResponseDTO, error)
}

type resultService struct {
	resultRepo   repository.ResultRepository
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
}

func NewResultService(
	resultRepo repository.ResultRepository,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
) ResultService {
	return &resultService{resultRepo: resultRepo, testRepo: testRepo, questionRepo: questionRepo}
}

// GetStudentTestResult joins the stored result with the test's current
// question content and the student's rank among all participants.
func (s *resultService) GetStudentTestResult(testID, studentID uint) (*dto.DetailedResultDTO, error) {
	result, err := s.resultRepo.FindByTestAndStudent(testID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: result not found", apperr.ErrNotFound)
		}
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("GetStudentTestResult: result load failed")
		return nil, apperr.Errorf("%w: failed to load result", apperr.ErrUpstream)
	}

	liveTest, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetStudentTestResult: test load failed")
		return nil, apperr.Errorf("%w: failed to load test", apperr.ErrUpstream)
	}

	questions, err := s.questionRepo.FindByUIDs(liveTest.QuestionUIDs())
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetStudentTestResult: question hydration failed")
		return nil, apperr.Errorf("%w: failed to load questions", apperr.ErrUpstream)
	}

	allResults, err := s.resultRepo.FindAllByTest(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetStudentTestResult: ranking load failed")
		return nil, apperr.Errorf("%w: failed to load results", apperr.ErrUpstream)
	}
	rank, totalStudents, _ := CalculateRanking(allResults, studentID)

	return AssembleDetailedResult(result, liveTest, questions, rank, totalStudents)
}

// AssembleDetailedResult renders the stored verdicts against the test's
// current question content. Wording is live; selectedOption, correctAnswer
// and isCorrect come from the submission-time snapshot so the verdict stays
// historically stable.
func AssembleDetailedResult(result *model.Result, liveTest *model.Test, questions []model.Question, rank, totalStudents int) (*dto.DetailedResultDTO, error) {
	// A test definition without question refs means the join upstream did
	// not resolve; that is an internal failure, not a business rule.
	if len(liveTest.Questions) == 0 {
		log.Error().Uint("testID", liveTest.ID).Msg("AssembleDetailedResult: test has no hydrated questions")
		return nil, apperr.Errorf("%w: unable to load test questions", apperr.ErrUpstream)
	}

	byUID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byUID[q.UID] = q
	}

	reviews := make([]dto.AnswerReviewDTO, len(result.Answers))
	for i, ans := range result.Answers {
		review := dto.AnswerReviewDTO{
			QuestionUID:    ans.QuestionUID,
			SelectedOption: ans.SelectedOption,
			CorrectAnswer:  ans.CorrectAnswer,
			IsCorrect:      ans.IsCorrect,
		}
		if q, ok := byUID[ans.QuestionUID]; ok {
			full := toQuestionResponse(&q)
			review.Question = full.Question
			review.Description = full.Description
			review.Options = full.Options
		} else {
			// Question deleted or renamed since submission; keep the row.
			review.Question = dto.LocalizedTextDTO{English: "Question not found"}
		}
		reviews[i] = review
	}

	return &dto.DetailedResultDTO{
		ID:            result.ID,
		TestID:        liveTest.ID,
		TestTitle:     liveTest.Title,
		Score:         result.Score,
		TotalMarks:    result.TotalMarks,
		Percentage:    formatPercentage(result.Score, result.TotalMarks),
		Rank:          rank,
		TotalStudents: totalStudents,
		SubmittedAt:   result.SubmittedAt,
		Questions:     reviews,
	}, nil
}

// GetStudentResults lists every result of a student, ranked strictly within
// each result's own test: group by test first, rank per group, then merge
// sorted by submission time, most recent first.
func (s *resultService) GetStudentResults(studentID uint) ([]dto.RankedResultDTO, error) {
	results, err := s.resultRepo.FindAllByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("GetStudentResults: load failed")
		return nil, apperr.Errorf("%w: failed to load results", apperr.ErrUpstream)
	}

	ranked := make([]dto.RankedResultDTO, 0, len(results))
	for _, result := range results {
		allForTest, err := s.resultRepo.FindAllByTest(result.TestID)
		if err != nil {
			log.Error().Err(err).Uint("testID", result.TestID).Msg("GetStudentResults: ranking load failed")
			return nil, apperr.Errorf("%w: failed to load results", apperr.ErrUpstream)
		}
		rank, totalStudents, _ := CalculateRanking(allForTest, studentID)

		ranked = append(ranked, dto.RankedResultDTO{
			ID:            result.ID,
			TestID:        result.TestID,
			TestTitle:     result.Test.Title,
			Score:         result.Score,
			TotalMarks:    result.TotalMarks,
			Percentage:    formatPercentage(result.Score, result.TotalMarks),
			Rank:          rank,
			TotalStudents: totalStudents,
			SubmittedAt:   result.SubmittedAt,
		})
	}
	return ranked, nil
}

// GetResultByID returns the raw stored result. Students may only read their
// own; admins may read any.
func (s *resultService) GetResultByID(id, principalID uint, role string) (*dto.ResultResponseDTO, error) {
	result, err := s.resultRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: result not found", apperr.ErrNotFound)
		}
		log.Error().Err(err).Uint("resultID", id).Msg("GetResultByID: load failed")
		return nil, apperr.Errorf("%w: failed to load result", apperr.ErrUpstream)
	}
	if role == model.RoleStudent && result.StudentID != principalID {
		return nil, apperr.ErrForbidden
	}
	resp := toResultResponse(result)
	return &resp, nil
}
