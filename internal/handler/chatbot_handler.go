package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-portal/internal/handler/dto"
	"github.com/yourusername/assessment-portal/internal/handler/helper"
	"github.com/yourusername/assessment-portal/internal/service"
)

type chatResponder interface {
	Reply(message string) string
}

// ChatbotHandler отвечает на сообщения чат-бота
type ChatbotHandler struct {
	chatbot chatResponder
}

// NewChatbotHandler создает новый обработчик чат-бота
func NewChatbotHandler(chatbot chatResponder) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot}
}

// Chat возвращает ответ на сообщение
// POST /api/chatbot
func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req dto.ChatbotRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			helper.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	if req.Message == "" {
		c.JSON(http.StatusOK, dto.ChatbotResponse{Reply: service.EmptyChatMessageReply})
		return
	}
	c.JSON(http.StatusOK, dto.ChatbotResponse{Reply: h.chatbot.Reply(req.Message)})
}
