package repository

import (
	"context"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
)

// UserRepository определяет методы для работы с документами пользователей
type UserRepository interface {
	// Create записывает документ пользователя целиком (set с перезаписью)
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// UpdateProfile частично обновляет документ (merge); ключи — JSON-имена полей
	UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error
	UpdateOverallScore(ctx context.Context, id string, score float64) error
	UpdateProfileImage(ctx context.Context, id string, url string) error
	// GetLeaderboard возвращает пользователей по убыванию overallScore, при равенстве — по id
	GetLeaderboard(ctx context.Context, limit int) ([]entity.User, error)
}
