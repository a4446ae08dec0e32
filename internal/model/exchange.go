package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Exchange status constants
const (
	ExchangeStatusPending   = "pending"
	ExchangeStatusCompleted = "completed"
	ExchangeStatusCancelled = "cancelled"
)

// Exchange links a trade-in transaction: a customer's phone is received into
// inventory and an existing shop phone is sold in return for a cash
// difference. BuyPhone here is the *received* phone; the sold phone hangs off
// the linked Sale.
type Exchange struct {
	BaseModel
	SaleID uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	Sale   *Sale     `gorm:"foreignKey:SaleID" json:"sale,omitempty"`

	BuyPhoneID uuid.UUID `gorm:"type:uuid;not null;index" json:"buy_phone_id"`
	BuyPhone   *BuyPhone `gorm:"foreignKey:BuyPhoneID" json:"buy_phone,omitempty"`

	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	// Signed: positive means the customer pays extra, negative means the shop
	// owes the customer.
	DifferenceAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"difference_amount"`

	Reason string `gorm:"type:text" json:"reason"`
	Status string `gorm:"type:varchar(20);index" json:"status"`

	ProcessedByID *uuid.UUID `gorm:"type:uuid" json:"processed_by_id"`
	Processor     *User      `gorm:"foreignKey:ProcessedByID" json:"processor,omitempty"`
}

func (e *Exchange) CustomerPays() bool {
	return e.DifferenceAmount.IsPositive()
}

func (e *Exchange) ShopPays() bool {
	return e.DifferenceAmount.IsNegative()
}
