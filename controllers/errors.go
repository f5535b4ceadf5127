package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JNU-econovation/EATceed-AI/apperrors"
	"github.com/JNU-econovation/EATceed-AI/logger"
)

// respondError maps an application error onto the HTTP response. Anything
// without a taxonomy entry is a plain 500.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": gin.H{"code": appErr.Code, "message": appErr.Message},
		})
		return
	}

	logger.Error("unhandled error in request", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"},
	})
}
