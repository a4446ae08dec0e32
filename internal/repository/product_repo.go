package repository

import (
	"errors"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	// FirstOrCreateByIMEI inserts the product unless one with the same IMEI
	// already exists; runs inside the caller's transaction.
	FirstOrCreateByIMEI(tx *gorm.DB, product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindAll(search string) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error
	IMEIExists(imei string, excludeID *uuid.UUID) (bool, error)
	AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FirstOrCreateByIMEI(tx *gorm.DB, product *model.Product) error {
	var existing model.Product
	err := tx.Where("imei = ?", *product.IMEI).First(&existing).Error
	if err == nil {
		*product = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Brand").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindAll(search string) ([]model.Product, error) {
	query := r.db.Preload("Brand").Order("created_at DESC")
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("name LIKE ? OR model LIKE ? OR imei LIKE ?", term, term, term)
	}
	var products []model.Product
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) IMEIExists(imei string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.Model(&model.Product{}).Where("imei = ?", imei)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := r.db.Model(&model.BuyPhone{}).Where("imei = ?", imei).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AdjustQuantity runs inside the caller's transaction when purchases complete.
func (r *productRepo) AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}
