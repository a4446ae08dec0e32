package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase status constants
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusCancelled = "cancelled"
)

// Purchase is a supplier order for new stock, made of line items.
type Purchase struct {
	BaseModel
	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	InvoiceNumber string          `gorm:"type:varchar(50);uniqueIndex" json:"invoice_number"`
	Status        string          `gorm:"type:varchar(20);index" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	PurchaseDate  *time.Time      `gorm:"type:date;index" json:"purchase_date"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id"`
	Creator     *User      `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// PurchaseItem is one line of a supplier purchase.
type PurchaseItem struct {
	BaseModel
	PurchaseID uuid.UUID  `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Product    *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Description string          `gorm:"type:varchar(255)" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}

// TotalPrice is quantity × unit price.
func (i *PurchaseItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
