package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/validation"
)

// validateRequest checks a payload struct against its `validate` tags. A
// failure is returned as a wrapped app_errors.ErrValidation listing every
// offending field.
func validateRequest(payload any) error {
	err := validation.Instance().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var errorMessages []string
	for _, fieldErr := range validationErrors {
		// e.g. "Field 'limit' failed on the 'lte' tag"
		errMsg := fmt.Sprintf("Field '%s' failed on the '%s' tag", validation.FieldPath(fieldErr), fieldErr.Tag())
		errorMessages = append(errorMessages, errMsg)
	}

	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}
