package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-portal/internal/handler/helper"
)

// MaxUserIDLength — максимальная длина идентификатора пользователя
const MaxUserIDLength = 128

// ExtractUserID создает middleware для извлечения и валидации строкового ID из URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
func ExtractUserID(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(paramName)
		if id == "" || len(id) > MaxUserIDLength || strings.IndexFunc(id, unicode.IsSpace) >= 0 {
			helper.FailAndAbort(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s", paramName))
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}
