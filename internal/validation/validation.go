package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	app_errors "genai-chat/internal/errors"
)

// This package holds the process-wide validator instance. Creating a
// validator is costly (it caches struct metadata), so it is built once.

var (
	// validate holds the single instance of the validator.
	validate *validator.Validate
	// once ensures that the validator is initialized only one time.
	once sync.Once
)

// Instance returns the shared validator. Field names in errors are taken
// from `json` tags so they read the way clients spell them.
func Instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonTagName)
		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	})
	return validate
}

func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// FieldPath returns the namespace of a failed field without the name of the
// root struct, e.g. "sampling.top_k" or "chat_history[1].role".
func FieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// AsInvalidParameter converts the result of Struct into an
// *errors.InvalidParameterError naming the first offending field.
func AsInvalidParameter(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", app_errors.ErrInvalidParameter, err)
	}
	fe := fieldErrs[0]
	return &app_errors.InvalidParameterError{
		Field: FieldPath(fe),
		Rule:  fe.Tag(),
		Value: fe.Value(),
	}
}
