package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"
	"github.com/MechekakYounes/Phones-Store-Management/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreatePhone(req *CreatePhoneRequest, actor *model.User) (*model.BuyPhone, error)
	UpdatePhone(id uuid.UUID, req *UpdatePhoneRequest, actor *model.User) (*model.BuyPhone, error)
	SellPhone(id uuid.UUID, soldPrice decimal.Decimal, actor *model.User) (*model.BuyPhone, error)
	MarkTested(id uuid.UUID, issues string, actor *model.User) (*model.BuyPhone, error)
	MarkListed(id uuid.UUID, actor *model.User) (*model.BuyPhone, error)
	MarkReturned(id uuid.UUID, actor *model.User) (*model.BuyPhone, error)
	DeletePhone(id uuid.UUID, actor *model.User) error
	GetPhone(id uuid.UUID) (*model.BuyPhone, error)
	ListPhones(filter repository.PhoneFilter) ([]model.BuyPhone, int64, error)
	Statistics(period string) (*repository.PhoneStatistics, error)
}

type CreatePhoneRequest struct {
	SellerName  string  `json:"seller_name" validate:"required,max=255"`
	SellerPhone string  `json:"seller_phone" validate:"max=50"`
	BrandID     string  `json:"brand_id" validate:"required"`
	Model       string  `json:"model" validate:"required,max=255"`
	Color       string  `json:"color" validate:"max=100"`
	Storage     string  `json:"storage" validate:"max=50"`
	IMEI        *string `json:"imei" validate:"omitempty,len=15"`
	Condition   string  `json:"condition" validate:"required,oneof=excellent very_good good fair damaged broken"`

	BuyPrice    decimal.Decimal  `json:"buy_price"`
	ResellPrice *decimal.Decimal `json:"resell_price"`

	Status       string `json:"status"`
	Notes        string `json:"notes"`
	Issues       string `json:"issues"`
	ReceivedDate string `json:"received_date"` // YYYY-MM-DD, defaults to today
}

type UpdatePhoneRequest struct {
	SellerName  *string `json:"seller_name"`
	SellerPhone *string `json:"seller_phone"`
	BrandID     *string `json:"brand_id"`
	Model       *string `json:"model"`
	Color       *string `json:"color"`
	Storage     *string `json:"storage"`
	IMEI        *string `json:"imei"`
	Condition   *string `json:"condition"`

	BuyPrice    *decimal.Decimal `json:"buy_price"`
	ResellPrice *decimal.Decimal `json:"resell_price"`

	Status *string `json:"status"`
	Notes  *string `json:"notes"`
	Issues *string `json:"issues"`
}

type inventoryService struct {
	phoneRepo   repository.BuyPhoneRepository
	brandRepo   repository.BrandRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewInventoryService(phoneRepo repository.BuyPhoneRepository, brandRepo repository.BrandRepository, productRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		phoneRepo:   phoneRepo,
		brandRepo:   brandRepo,
		productRepo: productRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *inventoryService) CreatePhone(req *CreatePhoneRequest, actor *model.User) (*model.BuyPhone, error) {
	// 1. Validate input
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.BuyPrice.IsNegative() {
		return nil, NewValidationError("buy_price", "The buy_price field must not be negative")
	}
	if req.ResellPrice != nil && req.ResellPrice.IsNegative() {
		return nil, NewValidationError("resell_price", "The resell_price field must not be negative")
	}

	// 2. Brand must exist
	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return nil, NewValidationError("brand_id", "The brand_id field must be a valid id")
	}
	if _, err := s.brandRepo.FindByID(brandID); err != nil {
		return nil, ErrBrandNotFound
	}

	// 3. IMEI duplicate pre-check. A failed check only logs a warning; the
	// unique constraint is the authoritative guard.
	if req.IMEI != nil {
		exists, err := s.phoneRepo.IMEIExists(*req.IMEI, nil)
		if err != nil {
			log.Printf("Warning: IMEI existence check failed: %v", err)
		} else if exists {
			return nil, ErrDuplicateIMEI
		}
	}

	// 4. Apply defaults
	receivedDate := time.Now()
	if req.ReceivedDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ReceivedDate)
		if err != nil {
			return nil, NewValidationError("received_date", "The received_date field must use YYYY-MM-DD")
		}
		receivedDate = parsed
	}

	status := req.Status
	if status == "" {
		status = model.PhoneStatusReceived
	}

	phone := &model.BuyPhone{
		SellerName:   req.SellerName,
		SellerPhone:  req.SellerPhone,
		BrandID:      &brandID,
		Model:        req.Model,
		Color:        req.Color,
		Storage:      req.Storage,
		IMEI:         req.IMEI,
		Condition:    req.Condition,
		BuyPrice:     req.BuyPrice,
		Status:       status,
		Notes:        req.Notes,
		Issues:       req.Issues,
		ReceivedDate: &receivedDate,
		ReceivedBy:   &actor.ID,
	}
	phone.CreatedBy = actor.Username
	phone.UpdatedBy = actor.Username

	// A phone entered directly as sold still gets its sold date stamped
	if status == model.PhoneStatusSold {
		now := time.Now()
		phone.SoldDate = &now
	}

	// 5. Resell price: explicit value wins, otherwise condition multiplier
	if req.ResellPrice != nil && !req.ResellPrice.IsZero() {
		phone.ResellPrice = *req.ResellPrice
	} else {
		phone.ResellPrice = phone.SuggestedResellPrice()
	}

	// 6. Create the phone and mirror it into the product catalog, so the
	// shared IMEI pool and the new-stock listing both see it
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.phoneRepo.Create(tx, phone); err != nil {
			return err
		}
		if phone.IMEI == nil {
			return nil
		}
		product := &model.Product{
			BrandID:   phone.BrandID,
			Name:      phone.Model,
			Model:     phone.Model,
			IMEI:      phone.IMEI,
			Storage:   phone.Storage,
			Color:     phone.Color,
			CostPrice: phone.BuyPrice,
			SellPrice: phone.ResellPrice,
		}
		product.CreatedBy = actor.Username
		product.UpdatedBy = actor.Username
		return s.productRepo.FirstOrCreateByIMEI(tx, product)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastActivity("add", phone, actor)

	return s.phoneRepo.FindByID(phone.ID)
}

func (s *inventoryService) UpdatePhone(id uuid.UUID, req *UpdatePhoneRequest, actor *model.User) (*model.BuyPhone, error) {
	phone, err := s.phoneRepo.FindByID(id)
	if err != nil {
		return nil, ErrPhoneNotFound
	}

	// Re-validate IMEI uniqueness excluding this record
	if req.IMEI != nil && (phone.IMEI == nil || *req.IMEI != *phone.IMEI) {
		if len(*req.IMEI) != 15 {
			return nil, NewValidationError("imei", "The imei field must be 15 characters")
		}
		exists, err := s.phoneRepo.IMEIExists(*req.IMEI, &id)
		if err != nil {
			log.Printf("Warning: IMEI existence check failed: %v", err)
		} else if exists {
			return nil, ErrDuplicateIMEI
		}
		phone.IMEI = req.IMEI
	}

	if req.SellerName != nil {
		phone.SellerName = *req.SellerName
	}
	if req.SellerPhone != nil {
		phone.SellerPhone = *req.SellerPhone
	}
	if req.BrandID != nil {
		brandID, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, NewValidationError("brand_id", "The brand_id field must be a valid id")
		}
		if _, err := s.brandRepo.FindByID(brandID); err != nil {
			return nil, ErrBrandNotFound
		}
		phone.BrandID = &brandID
	}
	if req.Model != nil {
		phone.Model = *req.Model
	}
	if req.Color != nil {
		phone.Color = *req.Color
	}
	if req.Storage != nil {
		phone.Storage = *req.Storage
	}
	if req.Condition != nil {
		if !model.ValidCondition(*req.Condition) {
			return nil, NewValidationError("condition", fmt.Sprintf("Unknown condition '%s'", *req.Condition))
		}
		phone.Condition = *req.Condition
	}
	if req.BuyPrice != nil {
		if req.BuyPrice.IsNegative() {
			return nil, NewValidationError("buy_price", "The buy_price field must not be negative")
		}
		phone.BuyPrice = *req.BuyPrice
	}
	if req.ResellPrice != nil {
		phone.ResellPrice = *req.ResellPrice
	}
	if req.Notes != nil {
		phone.Notes = *req.Notes
	}
	if req.Issues != nil {
		phone.Issues = *req.Issues
	}

	// Status changes stamp or clear the sold date: sold_date is set iff the
	// phone is sold.
	if req.Status != nil && *req.Status != phone.Status {
		wasSold := phone.Status == model.PhoneStatusSold
		phone.Status = *req.Status
		if phone.Status == model.PhoneStatusSold {
			now := time.Now()
			phone.SoldDate = &now
		} else if wasSold {
			phone.SoldDate = nil
			phone.SoldTo = nil
		}
	}

	phone.UpdatedBy = actor.Username

	if err := s.phoneRepo.Save(s.db, phone); err != nil {
		return nil, err
	}
	return s.phoneRepo.FindByID(phone.ID)
}

func (s *inventoryService) SellPhone(id uuid.UUID, soldPrice decimal.Decimal, actor *model.User) (*model.BuyPhone, error) {
	phone, err := s.phoneRepo.FindByID(id)
	if err != nil {
		return nil, ErrPhoneNotFound
	}

	if phone.IsSold() {
		return nil, ErrPhoneAlreadySold
	}

	now := time.Now()
	phone.Status = model.PhoneStatusSold
	phone.SoldDate = &now
	if soldPrice.IsPositive() {
		phone.ResellPrice = soldPrice
	}
	phone.UpdatedBy = actor.Username

	if err := s.phoneRepo.Save(s.db, phone); err != nil {
		return nil, err
	}

	s.broadcastActivity("sale", phone, actor)

	return phone, nil
}

func (s *inventoryService) MarkTested(id uuid.UUID, issues string, actor *model.User) (*model.BuyPhone, error) {
	return s.setStatus(id, model.PhoneStatusTested, issues, actor)
}

func (s *inventoryService) MarkListed(id uuid.UUID, actor *model.User) (*model.BuyPhone, error) {
	return s.setStatus(id, model.PhoneStatusListed, "", actor)
}

func (s *inventoryService) MarkReturned(id uuid.UUID, actor *model.User) (*model.BuyPhone, error) {
	return s.setStatus(id, model.PhoneStatusReturned, "", actor)
}

func (s *inventoryService) setStatus(id uuid.UUID, status, issues string, actor *model.User) (*model.BuyPhone, error) {
	phone, err := s.phoneRepo.FindByID(id)
	if err != nil {
		return nil, ErrPhoneNotFound
	}

	wasSold := phone.IsSold()
	phone.Status = status
	if wasSold {
		phone.SoldDate = nil
		phone.SoldTo = nil
	}
	if issues != "" {
		phone.Issues = issues
	}
	phone.UpdatedBy = actor.Username

	if err := s.phoneRepo.Save(s.db, phone); err != nil {
		return nil, err
	}
	return phone, nil
}

func (s *inventoryService) DeletePhone(id uuid.UUID, actor *model.User) error {
	if _, err := s.phoneRepo.FindByID(id); err != nil {
		return ErrPhoneNotFound
	}
	return s.phoneRepo.Delete(id, actor.Username)
}

func (s *inventoryService) GetPhone(id uuid.UUID) (*model.BuyPhone, error) {
	phone, err := s.phoneRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhoneNotFound
		}
		return nil, err
	}
	return phone, nil
}

func (s *inventoryService) ListPhones(filter repository.PhoneFilter) ([]model.BuyPhone, int64, error) {
	return s.phoneRepo.List(filter)
}

// Statistics aggregates over a rolling window: month = last 30 days,
// year = last 365 days, anything else = all time.
func (s *inventoryService) Statistics(period string) (*repository.PhoneStatistics, error) {
	var since *time.Time
	switch period {
	case "month":
		t := time.Now().AddDate(0, 0, -30)
		since = &t
	case "year":
		t := time.Now().AddDate(0, 0, -365)
		since = &t
	}
	return s.phoneRepo.Statistics(since)
}

func (s *inventoryService) broadcastActivity(eventType string, phone *model.BuyPhone, actor *model.User) {
	amount := phone.BuyPrice
	subtitle := fmt.Sprintf("From %s", phone.SellerName)
	if eventType == "sale" {
		amount = phone.ResellPrice
		subtitle = "Sold from inventory"
	}
	imei := "N/A"
	if phone.IMEI != nil {
		imei = *phone.IMEI
	}

	go s.wsHub.PublishActivity(ws.ActivityEvent{
		Type:     eventType,
		Title:    phone.Model,
		Subtitle: fmt.Sprintf("%s • IMEI: %s", subtitle, imei),
		Amount:   amount,
		Actor:    actor.Name,
	})
}
