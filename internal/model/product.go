package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the new-stock catalog entry (phones and accessories bought from
// suppliers, as opposed to BuyPhone which is second hand stock). Its IMEI
// pool is consulted by the buy-phone duplicate check.
type Product struct {
	BaseModel
	BrandID *uuid.UUID `gorm:"type:uuid;index" json:"brand_id"`
	Brand   *Brand     `gorm:"foreignKey:BrandID" json:"brand,omitempty"`

	Name    string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Model   string  `gorm:"type:varchar(255)" json:"model"`
	IMEI    *string `gorm:"column:imei;type:varchar(15);uniqueIndex" json:"imei"`
	Storage string  `gorm:"type:varchar(50)" json:"storage"`
	Color   string  `gorm:"type:varchar(100)" json:"color"`

	Quantity  int             `gorm:"default:0" json:"quantity"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost_price"`
	SellPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"sell_price"`
}
