package service

import (
	"errors"

	"github.com/MechekakYounes/Phones-Store-Management/pkg/validator"

	"github.com/google/uuid"
)

// Sentinel errors. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("your account is deactivated, contact administrator")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrRoleNotAllowed     = errors.New("role is not assignable")
	ErrSuperAdminExists   = errors.New("super admin already exists")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")

	ErrPhoneNotFound    = errors.New("phone not found")
	ErrPhoneAlreadySold = errors.New("phone already sold")
	ErrDuplicateIMEI    = errors.New("IMEI already exists in inventory")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrBrandExists      = errors.New("brand already exists")

	ErrSaleNotFound     = errors.New("sale not found")
	ErrExchangeNotFound = errors.New("exchange not found")
	ErrCustomerNotFound = errors.New("customer not found")

	ErrSupplierNotFound = errors.New("supplier not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrProductNotFound  = errors.New("product not found")
)

// ValidationError carries a field → message map, rendered as HTTP 422.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// validateStruct runs tag validation and wraps failures.
func validateStruct(data interface{}) *ValidationError {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Fields: validator.FieldErrors(errs)}
	}
	return nil
}

// parseID converts a request-supplied identifier into a uuid, surfacing a
// field-level validation error instead of a 500 on malformed input.
func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewValidationError(field, "The "+field+" field must be a valid identifier")
	}
	return id, nil
}
