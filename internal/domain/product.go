package domain

import "github.com/google/uuid"

type ProductCategory string

const (
	CategoryService   ProductCategory = "service"
	CategoryAccessory ProductCategory = "accessory"
)

func (c ProductCategory) Valid() bool {
	return c == CategoryService || c == CategoryAccessory
}

// Product is a billable service or a stocked accessory. Stock fields are
// meaningful only for accessories and stay nil for services.
type Product struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string          `gorm:"size:180" json:"name"`
	Category          ProductCategory `gorm:"type:varchar(20);index" json:"category"`
	DefaultPrice      float64         `gorm:"type:decimal(12,2)" json:"defaultPrice"`
	CurrentPrice      float64         `gorm:"type:decimal(12,2)" json:"currentPrice"`
	StockQuantity     *int            `json:"stockQuantity,omitempty"`
	LowStockThreshold *int            `json:"lowStockThreshold,omitempty"`
	SupplierDetails   *string         `gorm:"size:255" json:"supplierDetails,omitempty"`
}

// LowStock returns the accessories at or below their reorder threshold,
// preserving input order. Services never qualify, whatever their stock
// fields happen to hold.
func LowStock(products []Product) []Product {
	out := []Product{}
	for _, p := range products {
		if p.Category != CategoryAccessory {
			continue
		}
		if p.StockQuantity == nil || p.LowStockThreshold == nil {
			continue
		}
		if *p.StockQuantity <= *p.LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}
