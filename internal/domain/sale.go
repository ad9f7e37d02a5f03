package domain

import (
	"time"

	"github.com/google/uuid"
)

type Sale struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RepairJobID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"repairJobId"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index" json:"customerId"`
	// Snapshot, same convention as RepairJob.CustomerName.
	CustomerName  string     `gorm:"size:140" json:"customerName"`
	Items         []SaleItem `json:"items"`
	SubTotal      float64    `gorm:"type:decimal(12,2)" json:"subTotal"`
	GSTRate       float64    `gorm:"type:decimal(5,4)" json:"gstRate"`
	GSTAmount     float64    `gorm:"type:decimal(12,2)" json:"gstAmount"`
	TotalAmount   float64    `gorm:"type:decimal(12,2)" json:"totalAmount"`
	PaymentMethod string     `gorm:"size:30" json:"paymentMethod"`
	InvoiceNumber string     `gorm:"size:30;uniqueIndex" json:"invoiceNumber"`
	Date          time.Time  `json:"date"`
}

// SaleItem is a line frozen at checkout: the price actually charged and the
// category flag are copied from the product so later catalog edits leave
// historic invoices untouched. ProductID only drives the stock decrement at
// checkout and is not a live reference afterwards.
type SaleItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"-"`
	SaleID    uuid.UUID  `gorm:"type:uuid;index" json:"-"`
	Position  int        `json:"-"`
	ProductID *uuid.UUID `gorm:"type:uuid" json:"productId,omitempty"`
	Name      string     `gorm:"size:180" json:"name"`
	Price     float64    `gorm:"type:decimal(12,2)" json:"price"`
	Quantity  int        `gorm:"not null" json:"quantity"`
	IsService bool       `json:"isService"`
}
