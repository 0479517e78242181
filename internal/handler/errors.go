package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-portal/internal/handler/helper"
	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

// handleError сопоставляет ошибку сервиса со статусом HTTP и отправляет
// {success:false, message}. Текст ошибки передаётся клиенту как есть.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		helper.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrValidation):
		helper.Fail(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR: Internal server error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		helper.Fail(c, http.StatusInternalServerError, err.Error())
	}
}
