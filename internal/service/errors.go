package service

import (
	"fmt"

	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

// Ошибки сервисного слоя. Все оборачивают общие ошибки приложения,
// поэтому обработчики сопоставляют их со статусами через errors.Is.
var (
	ErrUnknownTopic      = fmt.Errorf("%w: unknown topic", apperrors.ErrValidation)
	ErrNoUpdatableFields = fmt.Errorf("%w: no updatable fields", apperrors.ErrValidation)
	ErrMissingRequired   = fmt.Errorf("%w: uid, name and email are required", apperrors.ErrValidation)
	ErrEmptyProfileImage = fmt.Errorf("%w: empty image", apperrors.ErrValidation)
	ErrInvalidFieldValue = fmt.Errorf("%w: profile fields must be strings", apperrors.ErrValidation)
)
