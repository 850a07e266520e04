package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/model"
)

// Principal is the authenticated identity attached to every request by the
// upstream auth layer. Credential checks never happen here.
type Principal struct {
	ID   uint
	Role string
}

const principalKey = "principal"

// Authenticated reads the identity headers injected by the auth gateway
// (X-User-Id / X-User-Role) and aborts with 401 when they are absent.
func Authenticated() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		idStr := ctx.GetHeader("X-User-Id")
		role := ctx.GetHeader("X-User-Role")
		if idStr == "" || role == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "authentication required"})
			return
		}
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid principal"})
			return
		}
		ctx.Set(principalKey, Principal{ID: uint(id), Role: role})
		ctx.Next()
	}
}

// RequireAdmin rejects non-admin principals. Must run after Authenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, ok := FromContext(ctx)
		if !ok || principal.Role != model.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "admin access required"})
			return
		}
		ctx.Next()
	}
}

// FromContext returns the request principal set by Authenticated.
func FromContext(ctx *gin.Context) (Principal, bool) {
	val, exists := ctx.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := val.(Principal)
	return principal, ok
}
