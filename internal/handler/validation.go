package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
)

// RegisterValidators добавляет в движок валидации gin собственные теги.
// topic — ключ из каталога тем.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("topic", func(fl validator.FieldLevel) bool {
		return entity.IsKnownTopic(fl.Field().String())
	})
}
