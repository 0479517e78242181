package repository

import (
	"context"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
)

// TestResultRepository — подчинённая коллекция результатов тестов пользователя.
// Только добавление и чтение: результаты неизменяемы.
type TestResultRepository interface {
	// Add добавляет результат; ErrNotFound, если пользователя нет
	Add(ctx context.Context, userID string, result *entity.TestResult) error
	ListByUser(ctx context.Context, userID string) ([]entity.TestResult, error)
}
