package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
	"github.com/yourusername/assessment-portal/internal/handler/dto"
	"github.com/yourusername/assessment-portal/internal/handler/helper"
)

// resultService принимает результаты тестов
type resultService interface {
	SubmitResult(ctx context.Context, userID, topic string, score, totalQuestions int) (*entity.TestResult, error)
}

// AssessmentHandler обрабатывает сдачу тестов и каталог тем
type AssessmentHandler struct {
	resultService resultService
}

// NewAssessmentHandler создает новый обработчик тестов
func NewAssessmentHandler(resultService resultService) *AssessmentHandler {
	return &AssessmentHandler{resultService: resultService}
}

// SubmitTest сохраняет результат теста и пересчитывает общий балл
// POST /api/user/:id/submit_test
func (h *AssessmentHandler) SubmitTest(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var req dto.SubmitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.resultService.SubmitResult(c.Request.Context(), userID, req.Topic, *req.Score, *req.TotalQuestions); err != nil {
		handleError(c, err)
		return
	}
	helper.OK(c, "Test result saved.")
}

// ListTopics возвращает каталог тем
// GET /api/topics
func (h *AssessmentHandler) ListTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "topics": entity.Topics()})
}

// GetTopic возвращает тему по ключу; неизвестный ключ получает имя "Unknown Test"
// GET /api/topics/:key
func (h *AssessmentHandler) GetTopic(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "topic": entity.LookupTopic(c.Param("key"))})
}
