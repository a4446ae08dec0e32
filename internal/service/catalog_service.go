package service

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/google/uuid"
)

// Catalog services cover the thin reference entities: brands, customers and
// suppliers.

type BrandService interface {
	CreateBrand(req *BrandRequest, actor *model.User) (*model.Brand, error)
	UpdateBrand(id uuid.UUID, req *BrandRequest, actor *model.User) (*model.Brand, error)
	DeleteBrand(id uuid.UUID) error
	GetAllBrands() ([]model.Brand, error)
	Statistics() (*repository.BrandStats, error)
}

type BrandRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type brandService struct {
	brandRepo repository.BrandRepository
}

func NewBrandService(brandRepo repository.BrandRepository) BrandService {
	return &brandService{brandRepo: brandRepo}
}

func (s *brandService) CreateBrand(req *BrandRequest, actor *model.User) (*model.Brand, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.brandRepo.FindByName(req.Name); err == nil {
		return nil, ErrBrandExists
	}

	brand := &model.Brand{Name: req.Name}
	brand.CreatedBy = actor.Username
	brand.UpdatedBy = actor.Username
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *brandService) UpdateBrand(id uuid.UUID, req *BrandRequest, actor *model.User) (*model.Brand, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		return nil, ErrBrandNotFound
	}
	if other, err := s.brandRepo.FindByName(req.Name); err == nil && other.ID != id {
		return nil, ErrBrandExists
	}

	brand.Name = req.Name
	brand.UpdatedBy = actor.Username
	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *brandService) DeleteBrand(id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(id); err != nil {
		return ErrBrandNotFound
	}
	return s.brandRepo.Delete(id)
}

func (s *brandService) GetAllBrands() ([]model.Brand, error) {
	return s.brandRepo.FindAll()
}

func (s *brandService) Statistics() (*repository.BrandStats, error) {
	return s.brandRepo.Statistics()
}

type CustomerService interface {
	GetCustomer(id uuid.UUID) (*model.Customer, error)
	GetAllCustomers(search string) ([]model.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) GetCustomer(id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *customerService) GetAllCustomers(search string) ([]model.Customer, error) {
	return s.customerRepo.FindAll(search)
}

type SupplierService interface {
	CreateSupplier(req *SupplierRequest, actor *model.User) (*model.Supplier, error)
	UpdateSupplier(id uuid.UUID, req *SupplierRequest, actor *model.User) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID, actor *model.User) error
	GetSupplier(id uuid.UUID) (*model.Supplier, error)
	GetAllSuppliers(search string) ([]model.Supplier, error)
}

type SupplierRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Phone         string `json:"phone" validate:"max=50"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address" validate:"max=500"`
	ContactPerson string `json:"contact_person" validate:"max=255"`
	Notes         string `json:"notes"`
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) CreateSupplier(req *SupplierRequest, actor *model.User) (*model.Supplier, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Notes:         req.Notes,
	}
	supplier.CreatedBy = actor.Username
	supplier.UpdatedBy = actor.Username
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) UpdateSupplier(id uuid.UUID, req *SupplierRequest, actor *model.User) (*model.Supplier, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	supplier.Name = req.Name
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.ContactPerson = req.ContactPerson
	supplier.Notes = req.Notes
	supplier.UpdatedBy = actor.Username

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(id uuid.UUID, actor *model.User) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		return ErrSupplierNotFound
	}
	return s.supplierRepo.Delete(id, actor.Username)
}

func (s *supplierService) GetSupplier(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	return supplier, nil
}

func (s *supplierService) GetAllSuppliers(search string) ([]model.Supplier, error) {
	return s.supplierRepo.FindAll(search)
}
