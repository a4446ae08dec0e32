package service

import (
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	CreatePurchase(req *CreatePurchaseRequest, actor *model.User) (*model.Purchase, error)
	CompletePurchase(id uuid.UUID, actor *model.User) (*model.Purchase, error)
	CancelPurchase(id uuid.UUID, actor *model.User) (*model.Purchase, error)
	GetPurchase(id uuid.UUID) (*model.Purchase, error)
	GetAllPurchases() ([]model.Purchase, error)
}

type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplier_id" validate:"required"`
	InvoiceNumber string                `json:"invoice_number" validate:"omitempty,max=50"`
	PurchaseDate  string                `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         string                `json:"notes"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseItemRequest struct {
	ProductID   *string         `json:"product_id"`
	Description string          `json:"description" validate:"max=255"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
}

func NewPurchaseService(purchaseRepo repository.PurchaseRepository, supplierRepo repository.SupplierRepository, productRepo repository.ProductRepository, db *gorm.DB) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		db:           db,
	}
}

func (s *purchaseService) CreatePurchase(req *CreatePurchaseRequest, actor *model.User) (*model.Purchase, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	supplierID, err := parseID(req.SupplierID, "supplier_id")
	if err != nil {
		return nil, err
	}
	if _, err := s.supplierRepo.FindByID(supplierID); err != nil {
		return nil, ErrSupplierNotFound
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		purchaseDate, _ = time.Parse("2006-01-02", req.PurchaseDate)
	}

	items := make([]model.PurchaseItem, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		if item.UnitPrice.IsNegative() {
			return nil, NewValidationError("items", "The unit_price field must not be negative")
		}
		row := model.PurchaseItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
		if item.ProductID != nil && *item.ProductID != "" {
			productID, err := parseID(*item.ProductID, "items")
			if err != nil {
				return nil, err
			}
			if _, err := s.productRepo.FindByID(productID); err != nil {
				return nil, ErrProductNotFound
			}
			row.ProductID = &productID
		}
		items = append(items, row)
		total = total.Add(row.TotalPrice())
	}

	var purchaseID uuid.UUID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		invoice := req.InvoiceNumber
		if invoice == "" {
			var err error
			invoice, err = s.purchaseRepo.NextInvoiceNumber(tx, purchaseDate)
			if err != nil {
				return err
			}
		}

		purchase := &model.Purchase{
			SupplierID:    &supplierID,
			TotalAmount:   total,
			InvoiceNumber: invoice,
			Status:        model.PurchaseStatusPending,
			Notes:         req.Notes,
			PurchaseDate:  &purchaseDate,
			CreatedByID:   &actor.ID,
			Items:         items,
		}
		purchase.CreatedBy = actor.Username
		purchase.UpdatedBy = actor.Username
		if err := s.purchaseRepo.Create(tx, purchase); err != nil {
			return err
		}
		purchaseID = purchase.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.FindByID(purchaseID)
}

// CompletePurchase marks the order received and moves its quantities into
// the product catalog.
func (s *purchaseService) CompletePurchase(id uuid.UUID, actor *model.User) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}
	if purchase.Status == model.PurchaseStatusCompleted {
		return purchase, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range purchase.Items {
			if item.ProductID == nil {
				continue
			}
			if err := s.productRepo.AdjustQuantity(tx, *item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return tx.Model(&model.Purchase{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     model.PurchaseStatusCompleted,
				"updated_by": actor.Username,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.FindByID(id)
}

// CancelPurchase flips the order to cancelled. Stock added by a previous
// completion is taken back out.
func (s *purchaseService) CancelPurchase(id uuid.UUID, actor *model.User) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}
	if purchase.Status == model.PurchaseStatusCancelled {
		return purchase, nil
	}

	wasCompleted := purchase.Status == model.PurchaseStatusCompleted

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if wasCompleted {
			for _, item := range purchase.Items {
				if item.ProductID == nil {
					continue
				}
				if err := s.productRepo.AdjustQuantity(tx, *item.ProductID, -item.Quantity); err != nil {
					return err
				}
			}
		}
		return tx.Model(&model.Purchase{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     model.PurchaseStatusCancelled,
				"updated_by": actor.Username,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.FindByID(id)
}

func (s *purchaseService) GetPurchase(id uuid.UUID) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

func (s *purchaseService) GetAllPurchases() ([]model.Purchase, error) {
	return s.purchaseRepo.FindAll()
}
