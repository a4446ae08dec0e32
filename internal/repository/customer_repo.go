package repository

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	// FirstOrCreateByPhone runs inside the caller's transaction so that a
	// customer created for a failed sale or exchange is rolled back with it.
	FirstOrCreateByPhone(tx *gorm.DB, phone, name, address string) (*model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindAll(search string) ([]model.Customer, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) FirstOrCreateByPhone(tx *gorm.DB, phone, name, address string) (*model.Customer, error) {
	// No phone number means no dedup key: always a fresh row.
	if phone == "" {
		customer := &model.Customer{Name: name, Address: address}
		if err := tx.Create(customer).Error; err != nil {
			return nil, err
		}
		return customer, nil
	}

	// Phone goes into Attrs as well: a string Where condition is not copied
	// into the created row.
	var customer model.Customer
	err := tx.Where("phone = ?", phone).
		Attrs(model.Customer{Phone: phone, Name: name, Address: address}).
		FirstOrCreate(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindAll(search string) ([]model.Customer, error) {
	query := r.db.Order("created_at DESC")
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", term, term)
	}
	var customers []model.Customer
	err := query.Find(&customers).Error
	return customers, err
}
