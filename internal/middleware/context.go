package middleware

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/model"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser returns the authenticated user stored by RequireAuth, or nil
// on unauthenticated routes.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("current_user").(*model.User)
	return user
}
