package handler

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/middleware"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	users, err := h.userService.GetAllUsers(filter)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", users)
}

// GET /api/users/:id
func (h *UserHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", user)
}

// POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.CreateUser(&req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "User created successfully", user)
}

// PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.UpdateUser(id, &req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "User updated successfully", user)
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(id, middleware.CurrentUser(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "User deleted successfully", nil)
}

// POST /api/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req service.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	if err := h.userService.ResetPassword(id, &req, middleware.CurrentUser(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "Password reset successfully", nil)
}

// GET /api/users-stats
func (h *UserHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.userService.Statistics()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", stats)
}
