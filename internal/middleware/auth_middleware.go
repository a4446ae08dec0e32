package middleware

import (
	"strings"

	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"
	"github.com/MechekakYounes/Phones-Store-Management/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token, enforces the single-session token
// version against the database and stores the authenticated user in context.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Missing authorization token")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return unauthorized(c, "Invalid authorization format. Use: Bearer <token>")
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		// Strict session: the version baked into the token must still match
		// the database row.
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return unauthorized(c, "User not found")
		}
		if !user.IsActive {
			return unauthorized(c, "Account is deactivated")
		}
		if user.TokenVersion != claims.TokenVersion {
			return unauthorized(c, "Session expired (logged in on another device)")
		}

		c.Locals("current_user", user)
		c.Locals("user_permissions", claims.Permissions)

		return c.Next()
	}
}

// RequirePermission gates a route on one permission code from the role map.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		permissions, ok := c.Locals("user_permissions").([]string)
		if !ok {
			return forbidden(c, "No permissions found")
		}

		for _, p := range permissions {
			if p == permission {
				return c.Next()
			}
		}

		return forbidden(c, "Forbidden: requires '"+permission+"' permission")
	}
}

// RequireSuperAdmin restricts a route to the super admin account.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsSuperAdmin() {
			return forbidden(c, "Forbidden: super admin only")
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
