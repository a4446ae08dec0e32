package service

import (
	"fmt"
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"
	"github.com/MechekakYounes/Phones-Store-Management/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExchangeService interface {
	RecordExchange(req *RecordExchangeRequest, actor *model.User) (*model.Exchange, error)
	Complete(id uuid.UUID, actor *model.User) (*model.Exchange, error)
	Cancel(id uuid.UUID, actor *model.User) (*model.Exchange, error)
	Delete(id uuid.UUID, actor *model.User) error
	GetExchange(id uuid.UUID) (*model.Exchange, error)
	GetAllExchanges() ([]model.Exchange, error)
}

type RecordExchangeRequest struct {
	CustomerName    string `json:"customer_name" validate:"required,max=255"`
	CustomerPhone   string `json:"customer_phone" validate:"required,max=50"`
	CustomerAddress string `json:"customer_address" validate:"max=500"`

	// Phone leaving the shop. SoldPrice is the negotiated price for this
	// handover, not the listed resell price.
	SoldPhoneID string          `json:"sold_phone_id" validate:"required"`
	SoldPrice   decimal.Decimal `json:"sold_price"`

	// Phone the customer hands in. ReceivedValue is what the shop credits
	// for it; the resell price defaults to that value unless given.
	ReceivedBrandID     string           `json:"received_brand_id" validate:"required"`
	ReceivedModel       string           `json:"received_model" validate:"required,max=255"`
	ReceivedColor       string           `json:"received_color" validate:"max=100"`
	ReceivedStorage     string           `json:"received_storage" validate:"max=50"`
	ReceivedIMEI        string           `json:"received_imei" validate:"required,len=15"`
	ReceivedCondition   string           `json:"received_condition" validate:"required"`
	ReceivedValue       decimal.Decimal  `json:"received_value"`
	ReceivedResellPrice *decimal.Decimal `json:"received_resell_price"`
	ReceivedNotes       string           `json:"received_notes"`

	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

type exchangeService struct {
	exchangeRepo repository.ExchangeRepository
	saleRepo     repository.SaleRepository
	phoneRepo    repository.BuyPhoneRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewExchangeService(exchangeRepo repository.ExchangeRepository, saleRepo repository.SaleRepository, phoneRepo repository.BuyPhoneRepository, customerRepo repository.CustomerRepository, productRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) ExchangeService {
	return &exchangeService{
		exchangeRepo: exchangeRepo,
		saleRepo:     saleRepo,
		phoneRepo:    phoneRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *exchangeService) RecordExchange(req *RecordExchangeRequest, actor *model.User) (*model.Exchange, error) {
	// 1. Validate before any write
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if !model.ValidCondition(req.ReceivedCondition) {
		return nil, NewValidationError("received_condition", "The received_condition field must be a valid condition")
	}
	if req.ReceivedValue.IsNegative() {
		return nil, NewValidationError("received_value", "The received_value field must not be negative")
	}
	if req.SoldPrice.IsNegative() {
		return nil, NewValidationError("sold_price", "The sold_price field must not be negative")
	}
	if req.ReceivedResellPrice != nil && req.ReceivedResellPrice.IsNegative() {
		return nil, NewValidationError("received_resell_price", "The received_resell_price field must not be negative")
	}
	soldPhoneID, err := parseID(req.SoldPhoneID, "sold_phone_id")
	if err != nil {
		return nil, err
	}
	brandID, err := parseID(req.ReceivedBrandID, "received_brand_id")
	if err != nil {
		return nil, err
	}

	exists, err := s.phoneRepo.IMEIExists(req.ReceivedIMEI, nil)
	if err == nil && exists {
		return nil, ErrDuplicateIMEI
	}

	var exchangeID uuid.UUID

	// The whole handover is one transaction: customer, received phone, sale,
	// status flip and exchange record land together or not at all.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 2. Resolve customer by phone number
		customer, err := s.customerRepo.FirstOrCreateByPhone(tx, req.CustomerPhone, req.CustomerName, req.CustomerAddress)
		if err != nil {
			return err
		}

		// 3. Intake the traded-in phone. Without an explicit resell price it
		// starts at the trade-in value until a technician reassesses it.
		resell := req.ReceivedValue
		if req.ReceivedResellPrice != nil {
			resell = *req.ReceivedResellPrice
		}
		now := time.Now()
		received := &model.BuyPhone{
			SellerName:   customer.Name,
			SellerPhone:  customer.Phone,
			BrandID:      &brandID,
			Model:        req.ReceivedModel,
			Color:        req.ReceivedColor,
			Storage:      req.ReceivedStorage,
			IMEI:         &req.ReceivedIMEI,
			Condition:    req.ReceivedCondition,
			BuyPrice:     req.ReceivedValue,
			ResellPrice:  resell,
			Status:       model.PhoneStatusReceived,
			Notes:        req.ReceivedNotes,
			ReceivedDate: &now,
			ReceivedBy:   &actor.ID,
		}
		received.CreatedBy = actor.Username
		received.UpdatedBy = actor.Username
		if err := s.phoneRepo.Create(tx, received); err != nil {
			return err
		}

		// Every intake is mirrored into the product catalog
		product := &model.Product{
			BrandID:   received.BrandID,
			Name:      received.Model,
			Model:     received.Model,
			IMEI:      received.IMEI,
			Storage:   received.Storage,
			Color:     received.Color,
			CostPrice: received.BuyPrice,
			SellPrice: received.ResellPrice,
		}
		product.CreatedBy = actor.Username
		product.UpdatedBy = actor.Username
		if err := s.productRepo.FirstOrCreateByIMEI(tx, product); err != nil {
			return err
		}

		// 4. Load the phone leaving the shop
		sold, err := s.phoneRepo.FindByIDTx(tx, soldPhoneID)
		if err != nil {
			return ErrPhoneNotFound
		}
		if sold.IsSold() {
			return ErrPhoneAlreadySold
		}

		// 5. Record the sale side at the negotiated price: the customer pays
		// the difference when the outgoing phone is worth more than the
		// trade-in.
		paid := req.SoldPrice.Sub(req.ReceivedValue)
		if paid.IsNegative() {
			paid = decimal.Zero
		}
		sale := &model.Sale{
			CustomerID:    &customer.ID,
			BuyPhoneID:    &sold.ID,
			TotalAmount:   req.SoldPrice,
			PaidAmount:    paid,
			PaymentStatus: model.PaymentPaid,
			Notes:         req.Notes,
			CreatedByID:   &actor.ID,
		}
		sale.CreatedBy = actor.Username
		sale.UpdatedBy = actor.Username
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		// 6. Flip the outgoing phone
		sold.Status = model.PhoneStatusSold
		sold.SoldDate = &now
		sold.SoldTo = &customer.ID
		sold.UpdatedBy = actor.Username
		if err := s.phoneRepo.Save(tx, sold); err != nil {
			return err
		}

		// 7. Exchange record carries the signed difference: positive means
		// the customer owed money, negative means the shop paid out.
		exchange := &model.Exchange{
			SaleID:           sale.ID,
			BuyPhoneID:       received.ID,
			CustomerID:       customer.ID,
			DifferenceAmount: req.SoldPrice.Sub(req.ReceivedValue),
			Reason:           req.Reason,
			Status:           model.ExchangeStatusCompleted,
			ProcessedByID:    &actor.ID,
		}
		exchange.CreatedBy = actor.Username
		exchange.UpdatedBy = actor.Username
		if err := s.exchangeRepo.Create(tx, exchange); err != nil {
			return err
		}

		exchangeID = exchange.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := s.exchangeRepo.FindByID(exchangeID)
	if err != nil {
		return nil, err
	}

	go s.wsHub.PublishActivity(ws.ActivityEvent{
		Type:     "exchange",
		Title:    req.ReceivedModel,
		Subtitle: fmt.Sprintf("Exchange with %s", req.CustomerName),
		Amount:   result.DifferenceAmount,
		Actor:    actor.Name,
	})

	return result, nil
}

// Complete and Cancel are pure status flips: the money and the phones moved
// when the exchange was recorded, so neither reverses any side effect.
func (s *exchangeService) Complete(id uuid.UUID, actor *model.User) (*model.Exchange, error) {
	return s.setStatus(id, model.ExchangeStatusCompleted, actor)
}

func (s *exchangeService) Cancel(id uuid.UUID, actor *model.User) (*model.Exchange, error) {
	return s.setStatus(id, model.ExchangeStatusCancelled, actor)
}

func (s *exchangeService) setStatus(id uuid.UUID, status string, actor *model.User) (*model.Exchange, error) {
	if _, err := s.exchangeRepo.FindByID(id); err != nil {
		return nil, ErrExchangeNotFound
	}
	if err := s.exchangeRepo.UpdateStatus(id, status, actor.Username); err != nil {
		return nil, err
	}
	return s.exchangeRepo.FindByID(id)
}

func (s *exchangeService) Delete(id uuid.UUID, actor *model.User) error {
	if _, err := s.exchangeRepo.FindByID(id); err != nil {
		return ErrExchangeNotFound
	}
	return s.exchangeRepo.Delete(id, actor.Username)
}

func (s *exchangeService) GetExchange(id uuid.UUID) (*model.Exchange, error) {
	exchange, err := s.exchangeRepo.FindByID(id)
	if err != nil {
		return nil, ErrExchangeNotFound
	}
	return exchange, nil
}

func (s *exchangeService) GetAllExchanges() ([]model.Exchange, error) {
	return s.exchangeRepo.FindAll()
}
