package handler

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/middleware"
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// GET /api/purchases
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	purchases, err := h.purchaseService.GetAllPurchases()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", purchases)
}

// GET /api/purchases/:id
func (h *PurchaseHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase ID")
	}

	purchase, err := h.purchaseService.GetPurchase(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", purchase)
}

// POST /api/purchases
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var req service.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	purchase, err := h.purchaseService.CreatePurchase(&req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Purchase created successfully", purchase)
}

// POST /api/purchases/:id/complete
func (h *PurchaseHandler) Complete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase ID")
	}

	purchase, err := h.purchaseService.CompletePurchase(id, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Purchase completed", purchase)
}

// POST /api/purchases/:id/cancel
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase ID")
	}

	purchase, err := h.purchaseService.CancelPurchase(id, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Purchase cancelled", purchase)
}
