package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mzhao28/commune/middleware"
	"github.com/mzhao28/commune/services"
	"github.com/mzhao28/commune/utils"
)

// renderServiceError maps a typed service failure onto the response envelope.
// Anything outside the taxonomy is an internal storage fault.
func renderServiceError(ctx *gin.Context, err error) {
	reason := services.Reason(err)
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, reason, err.Error())
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrOwnerCannotLeave),
		errors.Is(err, services.ErrPrivateCommunity),
		errors.Is(err, services.ErrInactiveAccount):
		utils.Error(ctx, http.StatusForbidden, 40301, reason, err.Error())
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidLogin):
		utils.Error(ctx, http.StatusUnauthorized, 40101, reason, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrNotLiked),
		errors.Is(err, services.ErrSlugExhausted):
		utils.Error(ctx, http.StatusConflict, 40901, reason, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		utils.Error(ctx, http.StatusBadRequest, 40001, reason, err.Error())
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorw("internal error", "path", ctx.FullPath(), "err", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal", "internal server error")
	}
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 20
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// getUserID returns the authenticated actor, or false on optional-auth routes
// with no viewer.
func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// viewerID is getUserID for optional-auth reads: zero means anonymous.
func viewerID(ctx *gin.Context) uint {
	id, _ := getUserID(ctx)
	return id
}
