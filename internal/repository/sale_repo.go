package repository

import (
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindAll() ([]model.Sale, error)
	// NetSales sums total − discount of paid sales created in [start, end).
	NetSales(start, end time.Time) (decimal.Decimal, error)
	// PaidSalesBetween loads paid sales with their phone for profit math.
	PaidSalesBetween(start, end time.Time) ([]model.Sale, error)
	Recent(limit int) ([]model.Sale, error)
	Delete(id uuid.UUID) error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Customer").Preload("BuyPhone").Preload("BuyPhone.Brand").
		Preload("Creator").First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Customer").Preload("BuyPhone").Preload("BuyPhone.Brand").
		Preload("Creator").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) NetSales(start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.db.Model(&model.Sale{}).
		Where("payment_status = ? AND created_at >= ? AND created_at < ?", model.PaymentPaid, start, end).
		Select("COALESCE(SUM(total_amount - discount_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *saleRepo) PaidSalesBetween(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("BuyPhone").
		Where("payment_status = ? AND created_at >= ? AND created_at < ?", model.PaymentPaid, start, end).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Recent(limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Customer").Preload("BuyPhone").Preload("Creator").
		Order("created_at DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Sale{}, "id = ?", id).Error
}
