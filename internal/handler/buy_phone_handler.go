package handler

import (
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/middleware"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BuyPhoneHandler struct {
	inventoryService service.InventoryService
}

func NewBuyPhoneHandler(inventoryService service.InventoryService) *BuyPhoneHandler {
	return &BuyPhoneHandler{inventoryService: inventoryService}
}

// GET /api/buy-phones
func (h *BuyPhoneHandler) List(c *fiber.Ctx) error {
	filter := repository.PhoneFilter{
		Status:    c.Query("status"),
		Condition: c.Query("condition"),
		Search:    c.Query("search"),
		Page:      c.QueryInt("page", 1),
		PerPage:   c.QueryInt("per_page", 20),
	}

	if raw := c.Query("brand_id"); raw != "" {
		brandID, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid brand_id")
		}
		filter.BrandID = &brandID
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.EndDate = &t
		}
	}

	phones, total, err := h.inventoryService.ListPhones(filter)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    phones,
		"meta": fiber.Map{
			"total":    total,
			"page":     filter.Page,
			"per_page": filter.PerPage,
		},
	})
}

// GET /api/buy-phones/:id
func (h *BuyPhoneHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid phone ID")
	}

	phone, err := h.inventoryService.GetPhone(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", phone)
}

// POST /api/buy-phones
func (h *BuyPhoneHandler) Create(c *fiber.Ctx) error {
	var req service.CreatePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	phone, err := h.inventoryService.CreatePhone(&req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Phone added successfully", phone)
}

// PUT /api/buy-phones/:id
func (h *BuyPhoneHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid phone ID")
	}

	var req service.UpdatePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	phone, err := h.inventoryService.UpdatePhone(id, &req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Phone updated successfully", phone)
}

// DELETE /api/buy-phones/:id
func (h *BuyPhoneHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid phone ID")
	}

	if err := h.inventoryService.DeletePhone(id, middleware.CurrentUser(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "Phone deleted successfully", nil)
}

type sellPhoneRequest struct {
	SoldPrice decimal.Decimal `json:"sold_price"`
}

// POST /api/buy-phones/:id/sell
func (h *BuyPhoneHandler) Sell(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid phone ID")
	}

	var req sellPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	phone, err := h.inventoryService.SellPhone(id, req.SoldPrice, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Phone sold successfully", phone)
}

type markTestedRequest struct {
	Issues string `json:"issues"`
}

// POST /api/buy-phones/:id/mark-tested
func (h *BuyPhoneHandler) MarkTested(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid phone ID")
	}

	var req markTestedRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	phone, err := h.inventoryService.MarkTested(id, req.Issues, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Phone marked as tested", phone)
}

// POST /api/buy-phones/:id/mark-listed
func (h *BuyPhoneHandler) MarkListed(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid phone ID")
	}

	phone, err := h.inventoryService.MarkListed(id, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Phone listed for sale", phone)
}

// POST /api/buy-phones/:id/mark-returned
func (h *BuyPhoneHandler) MarkReturned(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid phone ID")
	}

	phone, err := h.inventoryService.MarkReturned(id, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Phone marked as returned", phone)
}

// GET /api/buy-phones-stats?period=month|year|all
func (h *BuyPhoneHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.inventoryService.Statistics(c.Query("period", "month"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", stats)
}
