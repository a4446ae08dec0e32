package handler

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/middleware"
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts(c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", products)
}

// GET /api/products/:id
func (h *ProductHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", product)
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.productService.CreateProduct(&req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Product created successfully", product)
}

// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.productService.UpdateProduct(id, &req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Product updated successfully", product)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	if err := h.productService.DeleteProduct(id, middleware.CurrentUser(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "Product deleted successfully", nil)
}
