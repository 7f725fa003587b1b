// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	"errors"

	playground "github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator instance for echo.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates a validator with struct tag support.
func New() *CustomValidator {
	return &CustomValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *CustomValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// IsMissingField reports whether err is a validation failure on a required
// field, as opposed to a malformed value.
func IsMissingField(err error) bool {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return true
		}
	}

	return false
}
