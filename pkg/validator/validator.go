package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// FieldErrors converts validation failures into a field → message map
// suitable for a 422 response body.
func FieldErrors(errs []*ErrorResponse) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		name := fieldName(e.FailedField)
		fields[name] = messageFor(name, e)
	}
	return fields
}

// fieldName strips the struct namespace and snake_cases the leaf field,
// so "CreatePhoneRequest.BuyPrice" becomes "buy_price".
func fieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	leaf := parts[len(parts)-1]

	var b strings.Builder
	runes := []rune(leaf)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			// Break only at a lower-to-upper boundary so acronym runs
			// like "IMEI" stay a single word.
			if i > 0 && runes[i-1] >= 'a' && runes[i-1] <= 'z' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func messageFor(name string, e *ErrorResponse) string {
	switch e.Tag {
	case "required", "uuid_required":
		return fmt.Sprintf("The %s field is required", name)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s", name, e.Value)
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s", name, e.Value)
	case "len":
		return fmt.Sprintf("The %s field must be %s characters", name, e.Value)
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s", name, e.Value)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", name)
	default:
		return fmt.Sprintf("The %s field failed on rule '%s'", name, e.Tag)
	}
}
