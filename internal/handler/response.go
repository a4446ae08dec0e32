package handler

import (
	"errors"

	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Every endpoint answers with the same envelope:
// {success, message?, data?/errors?}.

func ok(c *fiber.Ctx, message string, data interface{}) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(body)
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	body := fiber.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// fail maps a service error to its HTTP status. Validation failures carry the
// per-field error map; everything unrecognized is a 500.
func fail(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "The given data was invalid",
			"errors":  validationErr.Fields,
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrRoleNotAllowed):
		status = fiber.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPhoneNotFound),
		errors.Is(err, service.ErrBrandNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrExchangeNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrPurchaseNotFound),
		errors.Is(err, service.ErrProductNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrPhoneAlreadySold),
		errors.Is(err, service.ErrDuplicateIMEI),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrBrandExists),
		errors.Is(err, service.ErrSuperAdminExists),
		errors.Is(err, service.ErrCannotDeleteSelf),
		errors.Is(err, service.ErrWrongPassword):
		status = fiber.StatusBadRequest
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// pathID parses the {id} route parameter.
func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
