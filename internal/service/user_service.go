package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
	"github.com/yourusername/assessment-portal/internal/domain/repository"
	"github.com/yourusername/assessment-portal/internal/handler/dto"
	"github.com/yourusername/assessment-portal/internal/service/scoring"
)

// UserServiceConfig содержит настройки профиля, аватаров и лидерборда
type UserServiceConfig struct {
	MediaFolder       string
	AvatarMaxSide     int
	DefaultProfilePic string
	LeaderboardSize   int
	LeaderboardMax    int
}

// DefaultUserServiceConfig возвращает значения по умолчанию
func DefaultUserServiceConfig() UserServiceConfig {
	return UserServiceConfig{
		MediaFolder:       "quiz_portal_profiles",
		AvatarMaxSide:     512,
		DefaultProfilePic: "https://i.stack.imgur.com/34AD2.jpg",
		LeaderboardSize:   100,
		LeaderboardMax:    100,
	}
}

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo  repository.UserRepository
	mediaRepo repository.MediaRepository
	cfg       UserServiceConfig

	now func() time.Time
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, mediaRepo repository.MediaRepository, cfg UserServiceConfig) *UserService {
	return &UserService{
		userRepo:  userRepo,
		mediaRepo: mediaRepo,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Register создает документ пользователя с нулевыми счётчиками.
// Повторная регистрация с тем же uid перезаписывает документ.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) error {
	if strings.TrimSpace(req.UID) == "" || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return ErrMissingRequired
	}

	user := &entity.User{
		ID:             req.UID,
		Name:           req.Name,
		Email:          req.Email,
		RegisterNumber: req.RegisterNumber,
		Degree:         req.Degree,
		Batch:          req.Batch,
		College:        req.College,
		Courses:        entity.CourseSummary{Completed: 0, InProgress: 0},
		OverallScore:   0,
	}
	user.Touch(s.now())

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Printf("[UserService] Ошибка регистрации пользователя %s: %v", req.UID, err)
		return err
	}
	log.Printf("[UserService] Зарегистрирован пользователь %s (%s)", user.ID, user.Email)
	return nil
}

// UpdateProfile обновляет разрешённые поля профиля. Остальные ключи игнорируются.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		if _, ok := entity.EditableProfileFields[key]; !ok {
			continue
		}
		str, ok := value.(string)
		if !ok {
			return ErrInvalidFieldValue
		}
		updates[key] = str
	}
	if len(updates) == 0 {
		return ErrNoUpdatableFields
	}
	updates["lastUpdated"] = entity.FormatLastUpdated(s.now())

	if err := s.userRepo.UpdateProfile(ctx, userID, updates); err != nil {
		log.Printf("[UserService] Ошибка обновления профиля %s: %v", userID, err)
		return err
	}
	return nil
}

// UploadProfileImage нормализует аватар, загружает его на медиа-хостинг
// под publicID = userID и сохраняет полученный URL в профиле.
func (s *UserService) UploadProfileImage(ctx context.Context, userID string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyProfileImage
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}

	url, err := s.mediaRepo.Upload(ctx, NormalizeAvatar(data, s.cfg.AvatarMaxSide), userID, s.cfg.MediaFolder)
	if err != nil {
		log.Printf("[UserService] Ошибка загрузки аватара пользователя %s: %v", userID, err)
		return "", err
	}

	if err := s.userRepo.UpdateProfileImage(ctx, userID, url); err != nil {
		log.Printf("[UserService] Аватар загружен, но URL не сохранён для %s: %v", userID, err)
		return "", err
	}
	return url, nil
}

// GetLeaderboard возвращает топ пользователей по общему баллу.
// n <= 0 заменяется размером по умолчанию, n больше максимума обрезается.
func (s *UserService) GetLeaderboard(ctx context.Context, n int) ([]dto.LeaderboardEntryDTO, error) {
	if n <= 0 {
		n = s.cfg.LeaderboardSize
	}
	if s.cfg.LeaderboardMax > 0 && n > s.cfg.LeaderboardMax {
		n = s.cfg.LeaderboardMax
	}

	users, err := s.userRepo.GetLeaderboard(ctx, n)
	if err != nil {
		log.Printf("[UserService] Ошибка при получении лидерборда из репозитория: %v", err)
		return nil, err
	}

	ranked := scoring.Rank(users, n)
	entries := make([]dto.LeaderboardEntryDTO, len(ranked))
	for i, r := range ranked {
		pic := r.User.ProfileImageURL
		if pic == "" {
			pic = s.cfg.DefaultProfilePic
		}
		entries[i] = dto.LeaderboardEntryDTO{
			Rank:       r.Rank,
			Name:       r.User.Name,
			College:    r.User.College,
			ProfilePic: pic,
			Score:      r.User.OverallScore,
		}
	}
	return entries, nil
}
