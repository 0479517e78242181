package dto

import "github.com/yourusername/assessment-portal/internal/domain/entity"

// RegisterRequest — тело запроса POST /register.
// uid выдаёт внешний провайдер аутентификации.
type RegisterRequest struct {
	UID            string `json:"uid" binding:"required,max=128"`
	Email          string `json:"email" binding:"required,email"`
	Name           string `json:"name" binding:"required"`
	RegisterNumber string `json:"registerNumber"`
	Degree         string `json:"degree"`
	Batch          string `json:"batch"`
	College        string `json:"college"`
}

// SubmitTestRequest — тело запроса POST /api/user/:id/submit_test.
// Указатели нужны, чтобы отличать score = 0 от отсутствующего поля.
type SubmitTestRequest struct {
	Topic          string `json:"topic" binding:"required,topic"`
	Score          *int   `json:"score" binding:"required"`
	TotalQuestions *int   `json:"totalQuestions" binding:"required"`
}

// ChatbotRequest — тело запроса POST /api/chatbot
type ChatbotRequest struct {
	Message string `json:"message"`
}

// ChatbotResponse — ответ чат-бота
type ChatbotResponse struct {
	Reply string `json:"reply"`
}

// SeriesDTO — пара рядов экзамен/посещаемость для графиков дашборда
type SeriesDTO struct {
	Exam       []float64 `json:"exam"`
	Attendance []float64 `json:"attendance"`
}

// PerformanceDTO — помесячная и понедельная динамика
type PerformanceDTO struct {
	Monthly SeriesDTO `json:"monthly"`
	Weekly  SeriesDTO `json:"weekly"`
}

// UserProfileDTO — данные профиля вместе с вычисленными полями дашборда
type UserProfileDTO struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	RegisterNumber  string               `json:"registerNumber"`
	Degree          string               `json:"degree"`
	Batch           string               `json:"batch"`
	College         string               `json:"college"`
	LastUpdated     string               `json:"lastUpdated"`
	OverallScore    float64              `json:"overallScore"`
	ProfileImageURL string               `json:"profileImageUrl,omitempty"`
	Courses         entity.CourseSummary `json:"courses"`
	Performance     PerformanceDTO       `json:"performance"`
}

// LeaderboardEntryDTO представляет одного пользователя в лидерборде
type LeaderboardEntryDTO struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	College    string  `json:"college"`
	ProfilePic string  `json:"profilePic"`
	Score      float64 `json:"score"`
}
