package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

// TestResultRepo реализует repository.TestResultRepository
type TestResultRepo struct {
	db *gorm.DB
}

// NewTestResultRepo создает новый репозиторий результатов тестов
func NewTestResultRepo(db *gorm.DB) *TestResultRepo {
	return &TestResultRepo{db: db}
}

// Add сохраняет результат теста; пользователь должен существовать
func (r *TestResultRepo) Add(ctx context.Context, userID string, result *entity.TestResult) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return mapError(err)
	}
	if count == 0 {
		return apperrors.ErrNotFound
	}

	result.UserID = userID
	return mapError(r.db.WithContext(ctx).Create(result).Error)
}

// ListByUser возвращает все результаты пользователя в порядке сдачи
func (r *TestResultRepo) ListByUser(ctx context.Context, userID string) ([]entity.TestResult, error) {
	results := make([]entity.TestResult, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&results).Error
	if err != nil {
		return nil, mapError(err)
	}
	return results, nil
}

