package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sahajm/Civet/internal/controller"
	"github.com/sahajm/Civet/internal/controller/middleware"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/service"
)

type UserResultController struct {
	resultService service.ResultService
}

func NewUserResultController(resultService service.ResultService) *UserResultController {
	return &UserResultController{resultService: resultService}
}

// GetMyResults godoc
// @Summary (Student) List the caller's results, ranked per test
// @Tags Student - Results
// @Produce json
// @Success 200 {array} dto.RankedResultDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /results/student [get]
func (c *UserResultController) GetMyResults(ctx *gin.Context) {
	principal, _ := middleware.FromContext(ctx)
	results, err := c.resultService.GetStudentResults(principal.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetMyTestResult godoc
// @Summary (Student) Detailed report for one test
// @Description Live question content with the submission-time verdicts, percentage and rank.
// @Tags Student - Results
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.DetailedResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /results/student/test/{test_id} [get]
func (c *UserResultController) GetMyTestResult(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}
	principal, _ := middleware.FromContext(ctx)

	result, err := c.resultService.GetStudentTestResult(uint(testID), principal.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetResultByID godoc
// @Summary Get a stored result by ID
// @Description Students may only read their own result.
// @Tags Student - Results
// @Produce json
// @Param id path int true "Result ID"
// @Success 200 {object} dto.ResultResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /results/{id} [get]
func (c *UserResultController) GetResultByID(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Result ID format"})
		return
	}
	principal, _ := middleware.FromContext(ctx)

	result, err := c.resultService.GetResultByID(uint(id), principal.ID, principal.Role)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
