package providers

import (
	"errors"
	"fmt"
	"probpick/internal/models"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type InputValidatorInterface interface {
	Validate(inp any) error
}

type InputValidator struct {
	validate *validator.Validate
}

func NewInputValidator() InputValidatorInterface {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// error.Field() reports "count" instead of "Count"
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("tiername", func(fl validator.FieldLevel) bool {
		return models.ValidTierName(fl.Field().String())
	})

	return &InputValidator{validate: validate}
}

// Validate returns the first failed rule as a user readable ErrInvalidInput.
func (iv *InputValidator) Validate(inp any) error {
	err := iv.validate.Struct(inp)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return fmt.Errorf("%w, %s", models.ErrInvalidInput, translateValidationError(validationErrors[0]))
	}
	return fmt.Errorf("%w, %v", models.ErrInvalidInput, err)
}

func translateValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", e.Field())
	case "tiername":
		return fmt.Sprintf("%s must be 1-%d letters, digits, '-' or '_'", e.Field(), models.MaxTierNameLen)
	default:
		return fmt.Sprintf("validation failed for %s with rule %s", e.Field(), e.Tag())
	}
}
