package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-portal/internal/handler/dto"
	"github.com/yourusername/assessment-portal/internal/handler/helper"
	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

// MaxProfileImageSize — максимальный размер загружаемого аватара
const MaxProfileImageSize = 10 << 20

// userService — операции с пользователями, нужные обработчику
type userService interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) error
	UploadProfileImage(ctx context.Context, userID string, data []byte) (string, error)
	GetLeaderboard(ctx context.Context, n int) ([]dto.LeaderboardEntryDTO, error)
}

// profileService строит данные дашборда пользователя
type profileService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileDTO, error)
}

// UserHandler обрабатывает запросы, связанные с пользователями и лидербордом
type UserHandler struct {
	userService    userService
	profileService profileService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService userService, profileService profileService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		profileService: profileService,
	}
}

// Register обрабатывает регистрацию пользователя
// POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.Register(c.Request.Context(), req); err != nil {
		handleError(c, err)
		return
	}
	helper.OK(c, "User registered successfully!")
}

// GetUser возвращает профиль пользователя с вычисленными полями дашборда
// GET /api/user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	helper.SetNoCacheHeaders(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// UpdateUser частично обновляет профиль
// POST /api/user/:id/update
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		helper.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.UpdateProfile(c.Request.Context(), userID, fields); err != nil {
		handleError(c, err)
		return
	}
	helper.OK(c, "User data updated successfully.")
}

// UploadImage принимает multipart-файл profileImage и загружает его как аватар
// POST /api/user/:id/upload_image
func (h *UserHandler) UploadImage(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	file, header, err := c.Request.FormFile("profileImage")
	if err != nil {
		helper.Fail(c, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		helper.Fail(c, http.StatusBadRequest, "No selected file")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxProfileImageSize+1))
	if err != nil {
		log.Printf("[UserHandler] Ошибка чтения файла %s: %v", header.Filename, err)
		handleError(c, err)
		return
	}
	if len(data) > MaxProfileImageSize {
		helper.Fail(c, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	url, err := h.userService.UploadProfileImage(c.Request.Context(), userID, data)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "imageUrl": url})
}

// GetLeaderboard возвращает рейтинг пользователей
// GET /api/leaderboard?limit=N
func (h *UserHandler) GetLeaderboard(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		handleError(c, err)
		return
	}

	entries, err := h.userService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "leaderboard": entries})
}

// ExportLeaderboard выгружает рейтинг в CSV или Excel
// GET /api/leaderboard/export?format=csv|xlsx
func (h *UserHandler) ExportLeaderboard(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		handleError(c, err)
		return
	}

	entries, err := h.userService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard_%s", time.Now().Format("2006-01-02"))
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		exportXLSX(c, entries, filename)
	default:
		exportCSV(c, entries, filename)
	}
}

// parseLimit читает ?limit=; отсутствие параметра означает размер по умолчанию
func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Join(apperrors.ErrValidation, fmt.Errorf("invalid limit %q", raw))
	}
	return limit, nil
}
