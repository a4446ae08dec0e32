package handler

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/middleware"
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	receipt, err := h.saleService.RecordSale(&req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Sale recorded successfully", receipt)
}

// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	sales, err := h.saleService.GetAllSales()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", sales)
}
