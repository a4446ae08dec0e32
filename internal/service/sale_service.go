package service

import (
	"fmt"
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"
	"github.com/MechekakYounes/Phones-Store-Management/internal/ws"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	// RecordSale sells one phone to one (possibly new) customer atomically.
	RecordSale(req *RecordSaleRequest, actor *model.User) (*SaleReceipt, error)
	GetAllSales() ([]model.Sale, error)
}

type RecordSaleRequest struct {
	BuyerName    string  `json:"buyer_name" validate:"required,max=255"`
	BuyerPhone   string  `json:"buyer_phone" validate:"max=50"`
	BuyerAddress string  `json:"buyer_address" validate:"max=500"`
	BuyPhoneID   string  `json:"buy_phone_id" validate:"required"`
	Notes        string  `json:"notes"`

	TotalAmount    decimal.Decimal  `json:"total_amount"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
}

// SaleReceipt is the composite response handed back to the invoice page.
type SaleReceipt struct {
	ID           string          `json:"id"`
	BuyerName    string          `json:"buyer_name"`
	BuyerPhone   string          `json:"buyer_phone"`
	BuyerAddress string          `json:"buyer_address"`
	Model        string          `json:"model"`
	IMEI         string          `json:"imei"`
	Storage      string          `json:"storage"`
	Color        string          `json:"color"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

type saleService struct {
	saleRepo     repository.SaleRepository
	phoneRepo    repository.BuyPhoneRepository
	customerRepo repository.CustomerRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewSaleService(saleRepo repository.SaleRepository, phoneRepo repository.BuyPhoneRepository, customerRepo repository.CustomerRepository, db *gorm.DB, hub *ws.Hub) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		phoneRepo:    phoneRepo,
		customerRepo: customerRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *saleService) RecordSale(req *RecordSaleRequest, actor *model.User) (*SaleReceipt, error) {
	// 1. Validate before any write
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.TotalAmount.IsNegative() {
		return nil, NewValidationError("total_amount", "The total_amount field must not be negative")
	}
	phoneID, err := parseID(req.BuyPhoneID, "buy_phone_id")
	if err != nil {
		return nil, err
	}

	discount := decimal.Zero
	if req.DiscountAmount != nil {
		if req.DiscountAmount.IsNegative() {
			return nil, NewValidationError("discount_amount", "The discount_amount field must not be negative")
		}
		discount = *req.DiscountAmount
	}

	var receipt *SaleReceipt

	// All writes happen in one transaction: a missing phone mid-sequence
	// rolls back the customer and the sale as well.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 2. Resolve customer by phone number
		customer, err := s.customerRepo.FirstOrCreateByPhone(tx, req.BuyerPhone, req.BuyerName, req.BuyerAddress)
		if err != nil {
			return err
		}

		// 3. The phone must exist and still be in stock before the sale row
		// references it
		phone, err := s.phoneRepo.FindByIDTx(tx, phoneID)
		if err != nil {
			return ErrPhoneNotFound
		}
		if phone.IsSold() {
			return ErrPhoneAlreadySold
		}

		// 4. Create the sale
		sale := &model.Sale{
			CustomerID:     &customer.ID,
			BuyPhoneID:     &phoneID,
			TotalAmount:    req.TotalAmount,
			DiscountAmount: discount,
			PaidAmount:     req.TotalAmount.Sub(discount),
			PaymentStatus:  model.PaymentPaid,
			Notes:          req.Notes,
			CreatedByID:    &actor.ID,
		}
		sale.CreatedBy = actor.Username
		sale.UpdatedBy = actor.Username
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		// 5. Flip the phone
		now := time.Now()
		phone.Status = model.PhoneStatusSold
		phone.SoldDate = &now
		phone.SoldTo = &customer.ID
		phone.UpdatedBy = actor.Username
		if err := s.phoneRepo.Save(tx, phone); err != nil {
			return err
		}

		imei := ""
		if phone.IMEI != nil {
			imei = *phone.IMEI
		}

		// 6. Build the composite receipt
		receipt = &SaleReceipt{
			ID:           sale.ID.String(),
			BuyerName:    customer.Name,
			BuyerPhone:   customer.Phone,
			BuyerAddress: customer.Address,
			Model:        phone.Model,
			IMEI:         imei,
			Storage:      phone.Storage,
			Color:        phone.Color,
			Price:        sale.TotalAmount,
			Discount:     sale.DiscountAmount,
			Total:        sale.TotalAmount.Sub(sale.DiscountAmount),
			CreatedAt:    sale.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.PublishActivity(ws.ActivityEvent{
		Type:     "sale",
		Title:    receipt.Model,
		Subtitle: fmt.Sprintf("To %s • IMEI: %s", receipt.BuyerName, receipt.IMEI),
		Amount:   receipt.Total,
		Actor:    actor.Name,
	})

	return receipt, nil
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}
