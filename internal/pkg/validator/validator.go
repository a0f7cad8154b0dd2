package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/itinerary-microservice/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// "category" - проверка принадлежности строки к набору категорий каталога
	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.ValidCategory(fl.Field().String())
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
