package model

// Customer is a buyer (or exchange counterpart). The phone number is the
// natural dedup key: sales and exchanges find-or-create customers by phone.
type Customer struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	// Dedup by phone happens in the find-or-create path; not unique at the
	// schema level so walk-ins without a number can coexist.
	Phone   string `gorm:"type:varchar(50);index" json:"phone"`
	Address string `gorm:"type:varchar(500)" json:"address"`
}
