package handler

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/middleware"
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Login successful", response)
}

// POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.CurrentUser(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "Logged out successfully", nil)
}

// GET /api/user
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return ok(c, "", fiber.Map{
		"user":        user.ToResponse(),
		"role":        user.Role,
		"permissions": user.Permissions(),
	})
}

// POST /api/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req service.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	if err := h.authService.ChangePassword(middleware.CurrentUser(c), &req); err != nil {
		return fail(c, err)
	}
	return ok(c, "Password changed successfully", nil)
}

// POST /api/update-profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.authService.UpdateProfile(middleware.CurrentUser(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Profile updated successfully", user)
}

// GET /api/check-super-admin
func (h *AuthHandler) CheckSuperAdmin(c *fiber.Ctx) error {
	exists, err := h.authService.SuperAdminExists()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", fiber.Map{"exists": exists})
}

// POST /api/setup-super-admin
func (h *AuthHandler) SetupSuperAdmin(c *fiber.Ctx) error {
	var req service.SetupSuperAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.authService.SetupSuperAdmin(&req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Super admin created successfully", user)
}
