// Package validation wraps a shared validator instance so configuration and
// layout parameters report problems by their YAML key.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every error Struct returns for a failed rule.
var ErrInvalid = errors.New("invalid configuration")

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Struct validates v against its `validate` tags and returns the first
// failure in a readable form.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", ErrInvalid, field)
		case "gt":
			return fmt.Errorf("%w: %s must be greater than %s", ErrInvalid, field, param)
		case "gte", "min":
			return fmt.Errorf("%w: %s must be at least %s", ErrInvalid, field, param)
		case "lt":
			return fmt.Errorf("%w: %s must be less than %s", ErrInvalid, field, param)
		case "lte", "max":
			return fmt.Errorf("%w: %s must not exceed %s", ErrInvalid, field, param)
		case "oneof":
			return fmt.Errorf("%w: %s must be one of [%s]", ErrInvalid, field, param)
		case "gtefield":
			return fmt.Errorf("%w: %s must be at least %s", ErrInvalid, field, param)
		default:
			return fmt.Errorf("%w: %s failed %s", ErrInvalid, field, e.Tag())
		}
	}

	return err
}
