package repository

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandStats summarizes the catalog per brand.
type BrandStats struct {
	TotalBrands int64        `json:"total_brands"`
	TopBrands   []TopBrand   `json:"top_brands"`
}

type TopBrand struct {
	Name       string `json:"name"`
	PhoneCount int64  `json:"phone_count"`
}

type BrandRepository interface {
	Create(brand *model.Brand) error
	FindByID(id uuid.UUID) (*model.Brand, error)
	FindByName(name string) (*model.Brand, error)
	FindAll() ([]model.Brand, error)
	Update(brand *model.Brand) error
	Delete(id uuid.UUID) error
	Statistics() (*BrandStats, error)
}

type brandRepo struct {
	db *gorm.DB
}

func NewBrandRepo(db *gorm.DB) BrandRepository {
	return &brandRepo{db}
}

func (r *brandRepo) Create(brand *model.Brand) error {
	return r.db.Create(brand).Error
}

func (r *brandRepo) FindByID(id uuid.UUID) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) FindByName(name string) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.Where("name = ?", name).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) FindAll() ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.Order("name ASC").Find(&brands).Error
	return brands, err
}

func (r *brandRepo) Update(brand *model.Brand) error {
	return r.db.Save(brand).Error
}

func (r *brandRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Brand{}, "id = ?", id).Error
}

func (r *brandRepo) Statistics() (*BrandStats, error) {
	stats := &BrandStats{}
	if err := r.db.Model(&model.Brand{}).Count(&stats.TotalBrands).Error; err != nil {
		return nil, err
	}

	rows, err := r.db.Model(&model.Brand{}).
		Select("brands.name, COUNT(buy_phones.id) as phone_count").
		Joins("LEFT JOIN buy_phones ON buy_phones.brand_id = brands.id AND buy_phones.deleted_at IS NULL").
		Group("brands.id, brands.name").
		Order("phone_count DESC").
		Limit(10).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tb TopBrand
		if err := rows.Scan(&tb.Name, &tb.PhoneCount); err != nil {
			return nil, err
		}
		stats.TopBrands = append(stats.TopBrands, tb)
	}
	return stats, nil
}
