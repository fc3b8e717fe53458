package dto

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators wires decimal-aware validations into gin's binding
// engine. Must be called once at startup, before any request binding runs.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator engine is not *validator.Validate")
	}
	return v.RegisterValidation("nonnegativedecimal", validateNonNegativeDecimal)
}

// validateNonNegativeDecimal accepts decimal fields with value >= 0.
// The stock numeric validations cannot see inside decimal.Decimal.
func validateNonNegativeDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return !d.IsNegative()
}
