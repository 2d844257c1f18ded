package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workzen-dev/workzen/internal/apperrors"
	"go.uber.org/zap"
)

// respondError maps a service error to one JSON {message} body. Unexpected
// failures are logged and answered with a generic 500 so no internal detail
// leaks.
func respondError(ctx *gin.Context, err error) {
	var appErr *apperrors.Error

	if errors.As(err, &appErr) {
		ctx.JSON(apperrors.Status(appErr), gin.H{"message": appErr.Message})
		return
	}

	zap.L().Error("unexpected error", zap.String("path", ctx.FullPath()), zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}
