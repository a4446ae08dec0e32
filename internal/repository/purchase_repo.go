package repository

import (
	"fmt"
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(tx *gorm.DB, purchase *model.Purchase) error
	FindByID(id uuid.UUID) (*model.Purchase, error)
	FindAll() ([]model.Purchase, error)
	UpdateStatus(id uuid.UUID, status, updatedBy string) error
	// NextInvoiceNumber builds "PUR-YYYYMMDD-NNNN" from the day's sequence.
	NextInvoiceNumber(tx *gorm.DB, day time.Time) (string, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Preload("Supplier").Preload("Items").Preload("Items.Product").
		Preload("Creator").First(&purchase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Supplier").Preload("Items").Preload("Creator").
		Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) UpdateStatus(id uuid.UUID, status, updatedBy string) error {
	return r.db.Model(&model.Purchase{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *purchaseRepo) NextInvoiceNumber(tx *gorm.DB, day time.Time) (string, error) {
	var count int64
	if err := tx.Model(&model.Purchase{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("PUR-%s-%04d", day.Format("20060102"), count+1), nil
}
