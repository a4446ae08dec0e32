package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Condition constants
const (
	ConditionExcellent = "excellent"
	ConditionVeryGood  = "very_good"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionDamaged   = "damaged"
	ConditionBroken    = "broken"
)

// Status constants. Lifecycle: received → tested → listed → sold, with
// returned/cancelled as alternate terminal states. Any status may still be
// written by an authorized caller for manual correction.
const (
	PhoneStatusReceived  = "received"
	PhoneStatusTested    = "tested"
	PhoneStatusListed    = "listed"
	PhoneStatusSold      = "sold"
	PhoneStatusReturned  = "returned"
	PhoneStatusCancelled = "cancelled"
)

// BuyPhone is a used handset purchased from a seller and tracked through its
// resale lifecycle.
type BuyPhone struct {
	BaseModel
	SellerName  string  `gorm:"type:varchar(255);not null" json:"seller_name" validate:"required"`
	SellerPhone string  `gorm:"type:varchar(50);index" json:"seller_phone"`
	BrandID     *uuid.UUID `gorm:"type:uuid;index" json:"brand_id"`
	Brand       *Brand     `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Model       string     `gorm:"type:varchar(255);not null" json:"model" validate:"required"`
	Color       string     `gorm:"type:varchar(100)" json:"color"`
	Storage     string     `gorm:"type:varchar(50)" json:"storage"`
	IMEI        *string    `gorm:"column:imei;type:varchar(15);uniqueIndex" json:"imei"`
	Condition   string     `gorm:"type:varchar(30);index" json:"condition"`

	BuyPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"buy_price"`
	ResellPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"resell_price"`

	Status string `gorm:"type:varchar(30);index" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`
	Issues string `gorm:"type:text" json:"issues"` // Issues found during testing

	ReceivedDate *time.Time `gorm:"type:date;index" json:"received_date"`
	SoldDate     *time.Time `gorm:"type:date;index" json:"sold_date"`

	ReceivedBy *uuid.UUID `gorm:"type:uuid" json:"received_by"`
	Receiver   *User      `gorm:"foreignKey:ReceivedBy" json:"receiver,omitempty"`
	SoldTo     *uuid.UUID `gorm:"type:uuid" json:"sold_to"`
	Buyer      *Customer  `gorm:"foreignKey:SoldTo" json:"buyer,omitempty"`
}

// ConditionMultiplier maps a physical condition to the resell price factor.
func ConditionMultiplier(condition string) decimal.Decimal {
	switch condition {
	case ConditionExcellent:
		return decimal.NewFromFloat(1.5)
	case ConditionVeryGood:
		return decimal.NewFromFloat(1.4)
	case ConditionGood:
		return decimal.NewFromFloat(1.3)
	case ConditionFair:
		return decimal.NewFromFloat(1.2)
	case ConditionDamaged:
		return decimal.NewFromFloat(1.1)
	case ConditionBroken:
		return decimal.NewFromFloat(1.0)
	default:
		return decimal.NewFromFloat(1.3)
	}
}

// SuggestedResellPrice calculates the resell price from buy price and
// condition, rounded to 2 decimal places.
func (p *BuyPhone) SuggestedResellPrice() decimal.Decimal {
	return p.BuyPrice.Mul(ConditionMultiplier(p.Condition)).Round(2)
}

// PotentialProfit returns resell price minus buy price.
func (p *BuyPhone) PotentialProfit() decimal.Decimal {
	return p.ResellPrice.Sub(p.BuyPrice)
}

func (p *BuyPhone) IsSold() bool {
	return p.Status == PhoneStatusSold
}

// IsAvailable reports whether the phone can be sold (tested or listed).
func (p *BuyPhone) IsAvailable() bool {
	return p.Status == PhoneStatusTested || p.Status == PhoneStatusListed
}

func (p *BuyPhone) NeedsTesting() bool {
	return p.Status == PhoneStatusReceived
}

// Description builds a human readable phone description, e.g.
// "Samsung Galaxy S21 128GB (Black)".
func (p *BuyPhone) Description() string {
	desc := p.Model
	if p.Brand != nil {
		desc = p.Brand.Name + " " + desc
	}
	if p.Storage != "" {
		desc += " " + p.Storage
	}
	if p.Color != "" {
		desc += " (" + p.Color + ")"
	}
	return desc
}

// ValidCondition reports whether the given condition is a known enum value.
func ValidCondition(condition string) bool {
	switch condition {
	case ConditionExcellent, ConditionVeryGood, ConditionGood, ConditionFair, ConditionDamaged, ConditionBroken:
		return true
	}
	return false
}
