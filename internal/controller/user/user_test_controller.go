package user

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/internal/controller"
	"github.com/sahajm/Civet/internal/controller/middleware"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/service"
)

type UserTestController struct {
	testService       service.TestService
	submissionService service.SubmissionService
}

func NewUserTestController(testService service.TestService, submissionService service.SubmissionService) *UserTestController {
	return &UserTestController{testService: testService, submissionService: submissionService}
}

// GetAvailableTests godoc
// @Summary (Student) List tests that can still be taken
// @Description Active tests whose window has not closed. Carries lightweight question references only.
// @Tags Student - Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests/available [get]
func (c *UserTestController) GetAvailableTests(ctx *gin.Context) {
	tests, err := c.testService.GetAvailableTestsForStudent(time.Now())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetActiveTests godoc
// @Summary List all active tests
// @Tags Student - Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests [get]
func (c *UserTestController) GetActiveTests(ctx *gin.Context) {
	tests, err := c.testService.GetAllActiveTests(time.Now())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get a test for taking, after availability checks
// @Description Students are rejected before start, after end, and after an earlier submission. Correct answers are withheld.
// @Tags Student - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Timing or duplicate-submission violation"
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}
	principal, _ := middleware.FromContext(ctx)

	test, err := c.testService.GetTestWithValidation(uint(testID), principal.ID, principal.Role, time.Now())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// SubmitAnswers godoc
// @Summary (Student) Submit answers for a test
// @Description One submission per student per test. Scoring is synchronous; the stored result is returned.
// @Tags Student - Tests
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param submission body dto.SubmitAnswersDTO true "Answer set"
// @Success 201 {object} dto.ResultResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Timing violation or already submitted"
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id}/submit [post]
func (c *UserTestController) SubmitAnswers(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}
	var req dto.SubmitAnswersDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswers: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	principal, _ := middleware.FromContext(ctx)

	log.Info().Uint64("testID", testID).Uint("studentID", principal.ID).
		Int("answerCount", len(req.Answers)).Msg("received test submission")

	result, err := c.submissionService.SubmitAnswers(uint(testID), principal.ID, req, time.Now())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}
