package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment status constants
const (
	PaymentPending   = "pending"
	PaymentPartial   = "partial"
	PaymentPaid      = "paid"
	PaymentCancelled = "cancelled"
)

// Sale records one completed (or partial) transaction: one phone sold to one
// customer. The line-item variant (SaleItem) is kept in the schema for
// bulk/catalog sales but the primary flow is single phone per sale.
type Sale struct {
	BaseModel
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	BuyPhoneID *uuid.UUID `gorm:"type:uuid;index" json:"buy_phone_id"`
	BuyPhone   *BuyPhone  `gorm:"foreignKey:BuyPhoneID" json:"buy_phone,omitempty"`

	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_amount"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax_amount"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"paid_amount"`

	PaymentStatus string `gorm:"type:varchar(20);index" json:"payment_status"`
	PaymentMethod string `gorm:"type:varchar(20)" json:"payment_method"`
	Notes         string `gorm:"type:text" json:"notes"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id"`
	Creator     *User      `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// GrandTotal is derived: total − discount + tax.
func (s *Sale) GrandTotal() decimal.Decimal {
	return s.TotalAmount.Sub(s.DiscountAmount).Add(s.TaxAmount)
}

// Balance is the remaining amount owed, never negative.
func (s *Sale) Balance() decimal.Decimal {
	balance := s.GrandTotal().Sub(s.PaidAmount)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

func (s *Sale) IsPaid() bool {
	return s.PaymentStatus == PaymentPaid
}

// SaleItem is one line of an item-based sale.
type SaleItem struct {
	BaseModel
	SaleID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"sale_id"`
	BuyPhoneID *uuid.UUID `gorm:"type:uuid" json:"buy_phone_id"`
	ProductID  *uuid.UUID `gorm:"type:uuid" json:"product_id"`

	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost_price"`
}

// TotalPrice is quantity × unit price.
func (i *SaleItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
