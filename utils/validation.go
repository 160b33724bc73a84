package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags of v and converts failures into a validation error
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return NewValidationError(fmt.Sprintf("%s failed on the '%s' rule", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return NewValidationError(err.Error())
}

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if an amount is positive
func ValidatePositive(value decimal.Decimal, fieldName string) error {
	if !value.IsPositive() {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNonNegative checks if an amount is non-negative
func ValidateNonNegative(value decimal.Decimal, fieldName string) error {
	if value.IsNegative() {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateDatePresent checks that a date was supplied
func ValidateDatePresent(value time.Time, fieldName string) error {
	if value.IsZero() {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form
func ParseDate(value, fieldName string) (time.Time, error) {
	if err := ValidateRequired(value, fieldName); err != nil {
		return time.Time{}, err
	}
	date, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("%s must be a date in %s format", fieldName, DateLayout))
	}
	return date, nil
}
