package handler

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/middleware"
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExchangeHandler struct {
	exchangeService service.ExchangeService
}

func NewExchangeHandler(exchangeService service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// POST /api/exchanges
func (h *ExchangeHandler) Create(c *fiber.Ctx) error {
	var req service.RecordExchangeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	exchange, err := h.exchangeService.RecordExchange(&req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Exchange recorded successfully", exchange)
}

// GET /api/exchanges
func (h *ExchangeHandler) List(c *fiber.Ctx) error {
	exchanges, err := h.exchangeService.GetAllExchanges()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", exchanges)
}

// GET /api/exchanges/:id
func (h *ExchangeHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid exchange ID")
	}

	exchange, err := h.exchangeService.GetExchange(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", exchange)
}

// POST /api/exchanges/:id/complete
func (h *ExchangeHandler) Complete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid exchange ID")
	}

	exchange, err := h.exchangeService.Complete(id, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Exchange completed", exchange)
}

// POST /api/exchanges/:id/cancel
func (h *ExchangeHandler) Cancel(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid exchange ID")
	}

	exchange, err := h.exchangeService.Cancel(id, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Exchange cancelled", exchange)
}

// DELETE /api/exchanges/:id
func (h *ExchangeHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid exchange ID")
	}

	if err := h.exchangeService.Delete(id, middleware.CurrentUser(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "Exchange deleted successfully", nil)
}
