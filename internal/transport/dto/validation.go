package dto

import (
	"jobform-api/internal/models"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the custom tags used by the DTOs.
func NewValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("fieldtype", validateFieldType); err != nil {
		return nil, err
	}
	return v, nil
}

func validateFieldType(fl validator.FieldLevel) bool {
	return models.FieldType(fl.Field().String()).Valid()
}
