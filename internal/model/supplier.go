package model

// Supplier provides new stock purchased through Purchase records.
type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone         string `gorm:"type:varchar(50)" json:"phone"`
	Email         string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Address       string `gorm:"type:varchar(500)" json:"address"`
	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person"`
	Notes         string `gorm:"type:text" json:"notes"`
}
