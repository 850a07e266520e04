package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/dto"
)

// RespondError maps a service error onto the conventional HTTP status and a
// user-safe message. Unexpected failures are logged with full detail and
// surfaced as a generic 500 body.
func RespondError(ctx *gin.Context, err error) {
	status := apperr.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("request failed")
	}
	ctx.JSON(status, dto.ErrorResponse{Message: apperr.UserMessage(err)})
}
