package handler

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/middleware"
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BrandHandler struct {
	brandService service.BrandService
}

func NewBrandHandler(brandService service.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// GET /api/brands
func (h *BrandHandler) List(c *fiber.Ctx) error {
	brands, err := h.brandService.GetAllBrands()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", brands)
}

// POST /api/brands
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var req service.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	brand, err := h.brandService.CreateBrand(&req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Brand created successfully", brand)
}

// PUT /api/brands/:id
func (h *BrandHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid brand ID")
	}

	var req service.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	brand, err := h.brandService.UpdateBrand(id, &req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Brand updated successfully", brand)
}

// DELETE /api/brands/:id
func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid brand ID")
	}

	if err := h.brandService.DeleteBrand(id); err != nil {
		return fail(c, err)
	}
	return ok(c, "Brand deleted successfully", nil)
}

// GET /api/brands-stats
func (h *BrandHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.brandService.Statistics()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", stats)
}

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.customerService.GetAllCustomers(c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", customers)
}

// GET /api/customers/:id
func (h *CustomerHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid customer ID")
	}

	customer, err := h.customerService.GetCustomer(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", customer)
}

type SupplierHandler struct {
	supplierService service.SupplierService
}

func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// GET /api/suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.supplierService.GetAllSuppliers(c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", suppliers)
}

// GET /api/suppliers/:id
func (h *SupplierHandler) Show(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid supplier ID")
	}

	supplier, err := h.supplierService.GetSupplier(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", supplier)
}

// POST /api/suppliers
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	supplier, err := h.supplierService.CreateSupplier(&req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Supplier created successfully", supplier)
}

// PUT /api/suppliers/:id
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid supplier ID")
	}

	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	supplier, err := h.supplierService.UpdateSupplier(id, &req, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Supplier updated successfully", supplier)
}

// DELETE /api/suppliers/:id
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid supplier ID")
	}

	if err := h.supplierService.DeleteSupplier(id, middleware.CurrentUser(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, "Supplier deleted successfully", nil)
}
