package repository

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExchangeRepository interface {
	Create(tx *gorm.DB, exchange *model.Exchange) error
	FindByID(id uuid.UUID) (*model.Exchange, error)
	FindAll() ([]model.Exchange, error)
	UpdateStatus(id uuid.UUID, status, updatedBy string) error
	Delete(id uuid.UUID, deletedBy string) error
}

type exchangeRepo struct {
	db *gorm.DB
}

func NewExchangeRepo(db *gorm.DB) ExchangeRepository {
	return &exchangeRepo{db}
}

func (r *exchangeRepo) Create(tx *gorm.DB, exchange *model.Exchange) error {
	return tx.Create(exchange).Error
}

func (r *exchangeRepo) FindByID(id uuid.UUID) (*model.Exchange, error) {
	var exchange model.Exchange
	err := r.db.Preload("Sale").Preload("Sale.BuyPhone").Preload("Customer").
		Preload("BuyPhone").Preload("BuyPhone.Brand").Preload("Processor").
		First(&exchange, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &exchange, nil
}

func (r *exchangeRepo) FindAll() ([]model.Exchange, error) {
	var exchanges []model.Exchange
	err := r.db.Preload("Sale").Preload("Sale.BuyPhone").Preload("Customer").
		Preload("BuyPhone").Preload("BuyPhone.Brand").Preload("Processor").
		Order("created_at DESC").Find(&exchanges).Error
	return exchanges, err
}

func (r *exchangeRepo) UpdateStatus(id uuid.UUID, status, updatedBy string) error {
	return r.db.Model(&model.Exchange{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *exchangeRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Exchange{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Exchange{}, "id = ?", id).Error
}
