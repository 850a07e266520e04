package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/model"
	"github.com/sahajm/Civet/internal/repository"
	"gorm.io/gorm"
)

type TestService interface {
	CreateTest(req dto.TestCreateDTO, creatorID uint) (*dto.AdminTestDTO, error)
	UpdateTest(id uint, req dto.TestCreateDTO) (*dto.AdminTestDTO, error)
	DeleteTest(id uint) error
	GetTestByID(id uint, now time.Time) (*dto.TestSummaryDTO, error)
	GetTestsByCreator(creatorID uint, now time.Time) ([]dto.TestSummaryDTO, error)
	GetAllActiveTests(now time.Time) ([]dto.TestSummaryDTO, error)
	GetAvailableTestsForStudent(now time.Time) ([]dto.TestSummaryDTO, error)
	GetTestWithValidation(testID, userID uint, role string, now time.Time) (*dto.TestDetailDTO, error)
	GetTestWithFullQuestions(testID uint, now time.Time) (*dto.AdminTestDTO, error)
}

type testService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	userRepo     repository.UserRepository
}

func NewTestService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
) TestService {
	return &testService{testRepo: testRepo, questionRepo: questionRepo, resultRepo: resultRepo, userRepo: userRepo}
}

// validateQuestionUIDs rejects test definitions referencing unknown or
// inactive questions, naming every offending UID.
func (s *testService) validateQuestionUIDs(uids []string) error {
	found, err := s.questionRepo.FindActiveUIDs(uids)
	if err != nil {
		log.Error().Err(err).Msg("validateQuestionUIDs: lookup failed")
		return apperr.Errorf("%w: question lookup failed", apperr.ErrUpstream)
	}
	existing := make(map[string]struct{}, len(found))
	for _, uid := range found {
		existing[uid] = struct{}{}
	}
	var missing []string
	for _, uid := range uids {
		if _, ok := existing[uid]; !ok {
			missing = append(missing, uid)
		}
	}
	if len(missing) > 0 {
		return apperr.Errorf("%w: some questions not found or inactive: %s",
			apperr.ErrDataIntegrity, strings.Join(missing, ", "))
	}
	return nil
}

func buildTestQuestions(testID uint, uids []string) []model.TestQuestion {
	questions := make([]model.TestQuestion, len(uids))
	for i, uid := range uids {
		questions[i] = model.TestQuestion{TestID: testID, Position: i, QuestionUID: uid}
	}
	return questions
}

func (s *testService) CreateTest(req dto.TestCreateDTO, creatorID uint) (*dto.AdminTestDTO, error) {
	if err := s.validateQuestionUIDs(req.QuestionUIDs); err != nil {
		return nil, err
	}

	test := model.Test{
		Title:            req.Title,
		Description:      req.Description,
		StartTime:        req.StartTime,
		DurationMinutes:  req.Duration,
		MarksPerQuestion: req.MarksPerQuestion,
		NegativeMarks:    req.NegativeMarks,
		Questions:        buildTestQuestions(0, req.QuestionUIDs),
		IsActive:         true,
		CreatedByID:      creatorID,
	}
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Msg("CreateTest: insert failed")
		return nil, apperr.Errorf("%w: failed to create test", apperr.ErrUpstream)
	}
	return s.toAdminTest(&test, time.Now(), false)
}

func (s *testService) UpdateTest(id uint, req dto.TestCreateDTO) (*dto.AdminTestDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: test not found", apperr.ErrNotFound)
		}
		return nil, apperr.Errorf("%w: failed to load test", apperr.ErrUpstream)
	}
	if err := s.validateQuestionUIDs(req.QuestionUIDs); err != nil {
		return nil, err
	}

	test.Title = req.Title
	test.Description = req.Description
	test.StartTime = req.StartTime
	test.DurationMinutes = req.Duration
	test.MarksPerQuestion = req.MarksPerQuestion
	test.NegativeMarks = req.NegativeMarks
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}
	test.Questions = nil // question refs are replaced separately

	if err := s.testRepo.Update(test); err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("UpdateTest: save failed")
		return nil, apperr.Errorf("%w: failed to update test", apperr.ErrUpstream)
	}
	if err := s.testRepo.ReplaceQuestions(id, buildTestQuestions(id, req.QuestionUIDs)); err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("UpdateTest: question replacement failed")
		return nil, apperr.Errorf("%w: failed to update test questions", apperr.ErrUpstream)
	}
	test.Questions = buildTestQuestions(id, req.QuestionUIDs)
	return s.toAdminTest(test, time.Now(), false)
}

func (s *testService) DeleteTest(id uint) error {
	if err := s.testRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Errorf("%w: test not found", apperr.ErrNotFound)
		}
		log.Error().Err(err).Uint("testID", id).Msg("DeleteTest: delete failed")
		return apperr.Errorf("%w: failed to delete test", apperr.ErrUpstream)
	}
	return nil
}

func (s *testService) GetTestByID(id uint, now time.Time) (*dto.TestSummaryDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: test not found", apperr.ErrNotFound)
		}
		return nil, apperr.Errorf("%w: failed to load test", apperr.ErrUpstream)
	}
	refs, err := s.questionRefs(test)
	if err != nil {
		return nil, err
	}
	summary := toTestSummary(test, refs, now)
	return &summary, nil
}

func (s *testService) GetTestsByCreator(creatorID uint, now time.Time) ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindByCreator(creatorID)
	if err != nil {
		log.Error().Err(err).Uint("creatorID", creatorID).Msg("GetTestsByCreator: query failed")
		return nil, apperr.Errorf("%w: failed to load tests", apperr.ErrUpstream)
	}
	return s.toSummaries(tests, now)
}

func (s *testService) GetAllActiveTests(now time.Time) ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAllActive()
	if err != nil {
		log.Error().Err(err).Msg("GetAllActiveTests: query failed")
		return nil, apperr.Errorf("%w: failed to load tests", apperr.ErrUpstream)
	}
	return s.toSummaries(tests, now)
}

// GetAvailableTestsForStudent lists active tests that have not ended yet,
// carrying lightweight question references only. Full option text and
// correct answers stay server-side until after submission.
func (s *testService) GetAvailableTestsForStudent(now time.Time) ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAvailable(now)
	if err != nil {
		log.Error().Err(err).Msg("GetAvailableTestsForStudent: query failed")
		return nil, apperr.Errorf("%w: failed to load tests", apperr.ErrUpstream)
	}
	return s.toSummaries(tests, now)
}

// GetTestWithValidation returns the full test for taking, after the
// availability checks. Correct answers are withheld from the DTO.
func (s *testService) GetTestWithValidation(testID, userID uint, role string, now time.Time) (*dto.TestDetailDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: test not found", apperr.ErrNotFound)
		}
		return nil, apperr.Errorf("%w: failed to load test", apperr.ErrUpstream)
	}

	hasResult, err := s.hasResult(testID, userID)
	if err != nil {
		return nil, err
	}
	if err := ValidateAccess(test, role, hasResult, now); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindByUIDs(test.QuestionUIDs())
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetTestWithValidation: question hydration failed")
		return nil, apperr.Errorf("%w: failed to load questions", apperr.ErrUpstream)
	}

	detail := dto.TestDetailDTO{
		ID:               test.ID,
		Title:            test.Title,
		Description:      test.Description,
		StartTime:        test.StartTime,
		Duration:         test.DurationMinutes,
		EndTime:          test.EndTime(),
		Status:           test.Status(now),
		MarksPerQuestion: test.MarksPerQuestion,
		NegativeMarks:    test.NegativeMarks,
		TotalMarks:       test.TotalMarks(),
		Questions:        orderStudentQuestions(test, questions),
	}
	return &detail, nil
}

func (s *testService) GetTestWithFullQuestions(testID uint, now time.Time) (*dto.AdminTestDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: test not found", apperr.ErrNotFound)
		}
		return nil, apperr.Errorf("%w: failed to load test", apperr.ErrUpstream)
	}
	return s.toAdminTest(test, now, true)
}

func (s *testService) hasResult(testID, userID uint) (bool, error) {
	_, err := s.resultRepo.FindByTestAndStudent(testID, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	log.Error().Err(err).Uint("testID", testID).Uint("userID", userID).Msg("result existence check failed")
	return false, apperr.Errorf("%w: result lookup failed", apperr.ErrUpstream)
}

func (s *testService) questionRefs(test *model.Test) ([]dto.QuestionRefDTO, error) {
	if len(test.Questions) == 0 {
		return nil, nil
	}
	questions, err := s.questionRepo.FindByUIDs(test.QuestionUIDs())
	if err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("question ref hydration failed")
		return nil, apperr.Errorf("%w: failed to load questions", apperr.ErrUpstream)
	}
	byUID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byUID[q.UID] = q
	}
	refs := make([]dto.QuestionRefDTO, 0, len(test.Questions))
	for _, tq := range test.Questions {
		if q, ok := byUID[tq.QuestionUID]; ok {
			refs = append(refs, toQuestionRef(&q))
		}
	}
	return refs, nil
}

func (s *testService) toSummaries(tests []model.Test, now time.Time) ([]dto.TestSummaryDTO, error) {
	summaries := make([]dto.TestSummaryDTO, 0, len(tests))
	for i := range tests {
		refs, err := s.questionRefs(&tests[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, toTestSummary(&tests[i], refs, now))
	}
	return summaries, nil
}

func (s *testService) toAdminTest(test *model.Test, now time.Time, withQuestions bool) (*dto.AdminTestDTO, error) {
	resp := dto.AdminTestDTO{
		ID:               test.ID,
		Title:            test.Title,
		Description:      test.Description,
		StartTime:        test.StartTime,
		Duration:         test.DurationMinutes,
		EndTime:          test.EndTime(),
		Status:           test.Status(now),
		MarksPerQuestion: test.MarksPerQuestion,
		NegativeMarks:    test.NegativeMarks,
		TotalMarks:       test.TotalMarks(),
		IsActive:         test.IsActive,
		QuestionUIDs:     test.QuestionUIDs(),
		CreatedAt:        test.CreatedAt,
	}

	if creator, err := s.userRepo.FindByID(test.CreatedByID); err == nil {
		projected := dto.ProjectUser(creator)
		resp.CreatedBy = &projected
	}

	if withQuestions {
		questions, err := s.questionRepo.FindByUIDs(test.QuestionUIDs())
		if err != nil {
			log.Error().Err(err).Uint("testID", test.ID).Msg("toAdminTest: question hydration failed")
			return nil, apperr.Errorf("%w: failed to load questions", apperr.ErrUpstream)
		}
		position := make(map[string]int, len(test.Questions))
		for _, tq := range test.Questions {
			position[tq.QuestionUID] = tq.Position
		}
		sort.SliceStable(questions, func(i, j int) bool {
			return position[questions[i].UID] < position[questions[j].UID]
		})
		resp.Questions = make([]dto.QuestionResponseDTO, len(questions))
		for i := range questions {
			resp.Questions[i] = toQuestionResponse(&questions[i])
		}
	}
	return &resp, nil
}

// orderStudentQuestions arranges hydrated questions in test order, dropping
// correct answers from the payload.
func orderStudentQuestions(test *model.Test, questions []model.Question) []dto.StudentQuestionDTO {
	byUID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byUID[q.UID] = q
	}
	out := make([]dto.StudentQuestionDTO, 0, len(test.Questions))
	for _, tq := range test.Questions {
		if q, ok := byUID[tq.QuestionUID]; ok {
			out = append(out, toStudentQuestion(&q))
		}
	}
	return out
}
