package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sahajm/Civet/internal/controller"
	"github.com/sahajm/Civet/internal/controller/middleware"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/service"
)

type AdminTagController struct {
	tagService service.TagService
}

func NewAdminTagController(tagService service.TagService) *AdminTagController {
	return &AdminTagController{tagService: tagService}
}

// CreateTag godoc
// @Summary (Admin) Create a tag
// @Tags Admin - Tags
// @Accept json
// @Produce json
// @Param tag body dto.TagCreateDTO true "Tag label"
// @Success 201 {object} dto.TagDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate label"
// @Router /admin/tags [post]
func (c *AdminTagController) CreateTag(ctx *gin.Context) {
	var req dto.TagCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	principal, _ := middleware.FromContext(ctx)

	tag, err := c.tagService.CreateTag(req, principal.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, tag)
}

// ListTags godoc
// @Summary List all tags
// @Tags Admin - Tags
// @Produce json
// @Success 200 {array} dto.TagDTO
// @Router /admin/tags [get]
func (c *AdminTagController) ListTags(ctx *gin.Context) {
	tags, err := c.tagService.ListTags()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

// UpdateTag godoc
// @Summary (Admin) Rename a tag
// @Tags Admin - Tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param tag body dto.TagCreateDTO true "New label"
// @Success 200 {object} dto.TagDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tags/{id} [put]
func (c *AdminTagController) UpdateTag(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Tag ID format"})
		return
	}
	var req dto.TagCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	tag, err := c.tagService.UpdateTag(uint(id), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary (Admin) Delete a tag
// @Tags Admin - Tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tags/{id} [delete]
func (c *AdminTagController) DeleteTag(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Tag ID format"})
		return
	}
	if err := c.tagService.DeleteTag(uint(id)); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
