package repository

import (
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PhoneFilter narrows the buy-phone listing. Sold phones are excluded unless
// Status is set explicitly.
type PhoneFilter struct {
	Status    string // exact status, or "available" / "needs_testing"
	Condition string
	BrandID   *uuid.UUID
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PerPage   int
}

// PhoneStatistics aggregates the inventory over a rolling window.
type PhoneStatistics struct {
	TotalPhones     int64           `json:"total_phones"`
	SoldPhones      int64           `json:"sold_phones"`
	AvailablePhones int64           `json:"available_phones"`
	NeedsTesting    int64           `json:"needs_testing"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	SellThroughRate float64         `json:"sell_through_rate"`
}

type BuyPhoneRepository interface {
	Create(tx *gorm.DB, phone *model.BuyPhone) error
	FindByID(id uuid.UUID) (*model.BuyPhone, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.BuyPhone, error)
	Save(tx *gorm.DB, phone *model.BuyPhone) error
	Delete(id uuid.UUID, deletedBy string) error
	List(filter PhoneFilter) ([]model.BuyPhone, int64, error)
	IMEIExists(imei string, excludeID *uuid.UUID) (bool, error)
	Statistics(since *time.Time) (*PhoneStatistics, error)
	FindAll() ([]model.BuyPhone, error)
}

type buyPhoneRepo struct {
	db *gorm.DB
}

func NewBuyPhoneRepo(db *gorm.DB) BuyPhoneRepository {
	return &buyPhoneRepo{db}
}

func (r *buyPhoneRepo) Create(tx *gorm.DB, phone *model.BuyPhone) error {
	return tx.Create(phone).Error
}

func (r *buyPhoneRepo) FindByID(id uuid.UUID) (*model.BuyPhone, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *buyPhoneRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.BuyPhone, error) {
	var phone model.BuyPhone
	err := tx.Preload("Brand").Preload("Receiver").Preload("Buyer").
		First(&phone, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &phone, nil
}

func (r *buyPhoneRepo) Save(tx *gorm.DB, phone *model.BuyPhone) error {
	return tx.Save(phone).Error
}

func (r *buyPhoneRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.BuyPhone{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.BuyPhone{}, "id = ?", id).Error
}

func (r *buyPhoneRepo) List(filter PhoneFilter) ([]model.BuyPhone, int64, error) {
	query := r.db.Model(&model.BuyPhone{})

	switch filter.Status {
	case "":
		// Default: exclude sold phones
		query = query.Where("buy_phones.status <> ? OR buy_phones.status IS NULL", model.PhoneStatusSold)
	case "available":
		query = query.Where("buy_phones.status IN ?", []string{model.PhoneStatusTested, model.PhoneStatusListed})
	case "needs_testing":
		query = query.Where("buy_phones.status = ?", model.PhoneStatusReceived)
	default:
		query = query.Where("buy_phones.status = ?", filter.Status)
	}

	if filter.Condition != "" {
		query = query.Where("buy_phones.condition = ?", filter.Condition)
	}
	if filter.BrandID != nil {
		query = query.Where("buy_phones.brand_id = ?", *filter.BrandID)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Joins("LEFT JOIN brands ON brands.id = buy_phones.brand_id").
			Where(`buy_phones.imei LIKE ? OR buy_phones.model LIKE ?
				OR buy_phones.seller_name LIKE ? OR buy_phones.seller_phone LIKE ?
				OR brands.name LIKE ?`, term, term, term, term, term)
	}
	if filter.StartDate != nil {
		end := filter.StartDate
		if filter.EndDate != nil {
			end = filter.EndDate
		}
		query = query.Where("buy_phones.received_date BETWEEN ? AND ?", *filter.StartDate, *end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	var phones []model.BuyPhone
	err := query.Preload("Brand").Preload("Receiver").Preload("Buyer").
		Order("buy_phones.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&phones).Error
	return phones, total, err
}

// IMEIExists checks inventory and the new-stock catalog for a duplicate IMEI.
func (r *buyPhoneRepo) IMEIExists(imei string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.Model(&model.BuyPhone{}).Where("imei = ?", imei)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	// Legacy path: the product catalog shares the IMEI pool
	if err := r.db.Model(&model.Product{}).Where("imei = ?", imei).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *buyPhoneRepo) Statistics(since *time.Time) (*PhoneStatistics, error) {
	// Fresh query per aggregate; chaining finishers on one builder would
	// accumulate conditions.
	scoped := func() *gorm.DB {
		q := r.db.Model(&model.BuyPhone{})
		if since != nil {
			q = q.Where("received_date >= ?", *since)
		}
		return q
	}

	stats := &PhoneStatistics{
		TotalInvestment: decimal.Zero,
		TotalRevenue:    decimal.Zero,
	}

	if err := scoped().Count(&stats.TotalPhones).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("status = ?", model.PhoneStatusSold).
		Count(&stats.SoldPhones).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("status IN ?",
		[]string{model.PhoneStatusTested, model.PhoneStatusListed}).
		Count(&stats.AvailablePhones).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("status = ?", model.PhoneStatusReceived).
		Count(&stats.NeedsTesting).Error; err != nil {
		return nil, err
	}
	if err := scoped().Select("COALESCE(SUM(buy_price), 0)").
		Scan(&stats.TotalInvestment).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("status = ?", model.PhoneStatusSold).
		Select("COALESCE(SUM(resell_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	stats.TotalProfit = stats.TotalRevenue.Sub(stats.TotalInvestment)
	if stats.TotalPhones > 0 {
		stats.SellThroughRate = float64(stats.SoldPhones) / float64(stats.TotalPhones) * 100
	}

	return stats, nil
}

func (r *buyPhoneRepo) FindAll() ([]model.BuyPhone, error) {
	var phones []model.BuyPhone
	err := r.db.Preload("Brand").Preload("Receiver").Order("created_at DESC").Find(&phones).Error
	return phones, err
}
