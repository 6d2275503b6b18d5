package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/DanielMat97/BackendExtorApp/pkg/normalize"
)

// Optional +57 or 57, then ten significant digits not starting with 0.
var colombianPhone = regexp.MustCompile(`^(\+57|57)?[1-9]\d{9}$`)

func RegisterCustomValidations(validate *validator.Validate) error {
	if err := validate.RegisterValidation("colphone", validateColombianPhone); err != nil {
		return fmt.Errorf("register colphone: %w", err)
	}
	return nil
}

func validateColombianPhone(fl validator.FieldLevel) bool {
	return ValidColombianPhone(fl.Field().String())
}

// ValidColombianPhone reports whether raw, ignoring whitespace, is a
// Colombian mobile or landline number.
func ValidColombianPhone(raw string) bool {
	return colombianPhone.MatchString(normalize.StripWhitespace(raw))
}
