package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных
	// (отсутствующие поля, totalQuestions = 0, неизвестная тема и т.д.).
	ErrValidation = errors.New("validation failed")

	// ErrStoreUnavailable используется, когда хранилище документов недоступно
	// или вернуло ошибку драйвера.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrUpstream используется для ошибок внешнего медиа-хостинга.
	ErrUpstream = errors.New("upstream service error")
)
