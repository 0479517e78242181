package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository поверх PostgreSQL
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// mapError приводит ошибки GORM к ошибкам приложения
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}

// Create создает пользователя или перезаписывает существующего с тем же ID
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return mapError(r.db.WithContext(ctx).Save(user).Error)
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// UpdateProfile обновляет только переданные поля.
// Ключи приходят в JSON-именах и переводятся в имена колонок.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error {
	columns := make(map[string]interface{}, len(updates))
	for key, value := range updates {
		col, ok := columnFor(key)
		if !ok {
			log.Printf("[UserRepo.UpdateProfile] Пропуск неизвестного поля %q для пользователя %s", key, id)
			continue
		}
		columns[col] = value
	}
	if len(columns) == 0 {
		return fmt.Errorf("%w: no updatable fields", apperrors.ErrValidation)
	}
	return r.updates(ctx, id, columns)
}

// UpdateOverallScore сохраняет пересчитанный общий балл
func (r *UserRepo) UpdateOverallScore(ctx context.Context, id string, score float64) error {
	return r.updates(ctx, id, map[string]interface{}{"overall_score": score})
}

// UpdateProfileImage сохраняет URL аватара
func (r *UserRepo) UpdateProfileImage(ctx context.Context, id string, url string) error {
	return r.updates(ctx, id, map[string]interface{}{"profile_image_url": url})
}

func (r *UserRepo) updates(ctx context.Context, id string, columns map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetLeaderboard возвращает пользователей по убыванию общего балла, при равенстве по id
func (r *UserRepo) GetLeaderboard(ctx context.Context, limit int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Order("overall_score DESC").
		Order("id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

func columnFor(key string) (string, bool) {
	if key == "lastUpdated" {
		return "last_updated", true
	}
	col, ok := entity.EditableProfileFields[key]
	return col, ok
}
