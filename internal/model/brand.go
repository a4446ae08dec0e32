package model

// Brand is a phone manufacturer reference entity.
type Brand struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
}
