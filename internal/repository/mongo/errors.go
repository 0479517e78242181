package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

// mapError приводит ошибки драйвера к ошибкам приложения
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}
