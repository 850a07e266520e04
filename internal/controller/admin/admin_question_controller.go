package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/internal/controller"
	"github.com/sahajm/Civet/internal/controller/middleware"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/service"
)

type AdminQuestionController struct {
	questionService service.QuestionService
}

func NewAdminQuestionController(questionService service.QuestionService) *AdminQuestionController {
	return &AdminQuestionController{questionService: questionService}
}

// CreateQuestions godoc
// @Summary (Admin) Create questions in batch
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param questions body dto.QuestionBatchCreateDTO true "Questions to create"
// @Success 201 {array} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/questions [post]
func (c *AdminQuestionController) CreateQuestions(ctx *gin.Context) {
	var req dto.QuestionBatchCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestions: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	principal, _ := middleware.FromContext(ctx)

	questions, err := c.questionService.CreateQuestions(req, principal.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Questions created successfully", "questions": questions})
}

// ListQuestions godoc
// @Summary (Admin) List questions with pagination
// @Tags Admin - Questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /admin/questions [get]
func (c *AdminQuestionController) ListQuestions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	questions, total, err := c.questionService.ListQuestions(page, limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"questions": questions, "total": total})
}

// ListQuestionsByTag godoc
// @Summary (Admin) List active questions carrying a tag
// @Tags Admin - Questions
// @Produce json
// @Param tag_id path int true "Tag ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /admin/questions/tag/{tag_id} [get]
func (c *AdminQuestionController) ListQuestionsByTag(ctx *gin.Context) {
	tagID, err := strconv.ParseUint(ctx.Param("tag_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Tag ID format"})
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	questions, total, err := c.questionService.ListQuestionsByTag(uint(tagID), page, limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"questions": questions, "total": total})
}

// GetQuestion godoc
// @Summary (Admin) Get a question by UID
// @Tags Admin - Questions
// @Produce json
// @Param uid path string true "Question UID"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{uid} [get]
func (c *AdminQuestionController) GetQuestion(ctx *gin.Context) {
	question, err := c.questionService.GetQuestionByUID(ctx.Param("uid"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question by UID
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param uid path string true "Question UID"
// @Param question body dto.QuestionCreateDTO true "New question content"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{uid} [put]
func (c *AdminQuestionController) UpdateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.questionService.UpdateQuestion(ctx.Param("uid"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question by UID
// @Tags Admin - Questions
// @Produce json
// @Param uid path string true "Question UID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{uid} [delete]
func (c *AdminQuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.questionService.DeleteQuestion(ctx.Param("uid")); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
