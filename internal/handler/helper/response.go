package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetNoCacheHeaders запрещает кеширование ответа клиентом и прокси
func SetNoCacheHeaders(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}

// Fail отправляет ответ об ошибке в едином формате {success:false, message}
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// FailAndAbort — то же, что Fail, но прерывает цепочку middleware
func FailAndAbort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// OK отправляет успешный ответ с сообщением
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
