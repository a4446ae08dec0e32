package service

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	CreateProduct(req *CreateProductRequest, actor *model.User) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actor *model.User) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor *model.User) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetAllProducts(search string) ([]model.Product, error)
}

type CreateProductRequest struct {
	BrandID   string          `json:"brand_id" validate:"omitempty"`
	Name      string          `json:"name" validate:"required,max=255"`
	Model     string          `json:"model" validate:"max=255"`
	IMEI      *string         `json:"imei" validate:"omitempty,len=15"`
	Storage   string          `json:"storage" validate:"max=50"`
	Color     string          `json:"color" validate:"max=100"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
}

type UpdateProductRequest struct {
	BrandID   *string          `json:"brand_id"`
	Name      *string          `json:"name" validate:"omitempty,max=255"`
	Model     *string          `json:"model" validate:"omitempty,max=255"`
	IMEI      *string          `json:"imei" validate:"omitempty,len=15"`
	Storage   *string          `json:"storage" validate:"omitempty,max=50"`
	Color     *string          `json:"color" validate:"omitempty,max=100"`
	Quantity  *int             `json:"quantity" validate:"omitempty,gte=0"`
	CostPrice *decimal.Decimal `json:"cost_price"`
	SellPrice *decimal.Decimal `json:"sell_price"`
}

type productService struct {
	productRepo repository.ProductRepository
	brandRepo   repository.BrandRepository
}

func NewProductService(productRepo repository.ProductRepository, brandRepo repository.BrandRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		brandRepo:   brandRepo,
	}
}

func (s *productService) CreateProduct(req *CreateProductRequest, actor *model.User) (*model.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.CostPrice.IsNegative() || req.SellPrice.IsNegative() {
		return nil, NewValidationError("sell_price", "Prices must not be negative")
	}

	product := &model.Product{
		Name:      req.Name,
		Model:     req.Model,
		IMEI:      normalizeIMEI(req.IMEI),
		Storage:   req.Storage,
		Color:     req.Color,
		Quantity:  req.Quantity,
		CostPrice: req.CostPrice,
		SellPrice: req.SellPrice,
	}

	if req.BrandID != "" {
		brandID, err := parseID(req.BrandID, "brand_id")
		if err != nil {
			return nil, err
		}
		if _, err := s.brandRepo.FindByID(brandID); err != nil {
			return nil, ErrBrandNotFound
		}
		product.BrandID = &brandID
	}

	// The IMEI pool is shared with the second hand inventory.
	if product.IMEI != nil {
		if exists, err := s.productRepo.IMEIExists(*product.IMEI, nil); err == nil && exists {
			return nil, ErrDuplicateIMEI
		}
	}

	product.CreatedBy = actor.Username
	product.UpdatedBy = actor.Username
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(product.ID)
}

func (s *productService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actor *model.User) (*model.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.IMEI != nil && *req.IMEI != "" {
		if exists, err := s.productRepo.IMEIExists(*req.IMEI, &id); err == nil && exists {
			return nil, ErrDuplicateIMEI
		}
		product.IMEI = req.IMEI
	}
	if req.BrandID != nil {
		if *req.BrandID == "" {
			product.BrandID = nil
		} else {
			brandID, err := parseID(*req.BrandID, "brand_id")
			if err != nil {
				return nil, err
			}
			if _, err := s.brandRepo.FindByID(brandID); err != nil {
				return nil, ErrBrandNotFound
			}
			product.BrandID = &brandID
		}
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Model != nil {
		product.Model = *req.Model
	}
	if req.Storage != nil {
		product.Storage = *req.Storage
	}
	if req.Color != nil {
		product.Color = *req.Color
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SellPrice != nil {
		product.SellPrice = *req.SellPrice
	}
	product.UpdatedBy = actor.Username

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(id)
}

func (s *productService) DeleteProduct(id uuid.UUID, actor *model.User) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id, actor.Username)
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) GetAllProducts(search string) ([]model.Product, error) {
	return s.productRepo.FindAll(search)
}

func normalizeIMEI(imei *string) *string {
	if imei == nil || *imei == "" {
		return nil
	}
	return imei
}
