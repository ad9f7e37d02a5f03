package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestLowStock(t *testing.T) {
	products := []Product{
		{Name: "USB-C cable", Category: CategoryAccessory, StockQuantity: intp(3), LowStockThreshold: intp(5)},
		{Name: "Diagnostics", Category: CategoryService},
		{Name: "Charger 20W", Category: CategoryAccessory, StockQuantity: intp(10), LowStockThreshold: intp(5)},
		{Name: "Earbuds", Category: CategoryAccessory, StockQuantity: intp(5), LowStockThreshold: intp(5)},
	}
	got := LowStock(products)
	require.Len(t, got, 2)
	assert.Equal(t, "USB-C cable", got[0].Name)
	assert.Equal(t, "Earbuds", got[1].Name) // at threshold counts as low
}

func TestLowStockIgnoresServices(t *testing.T) {
	zero := 0
	products := []Product{
		{Name: "Water damage cleanup", Category: CategoryService, StockQuantity: &zero, LowStockThreshold: intp(5)},
	}
	assert.Empty(t, LowStock(products))
}

func TestLowStockIgnoresAccessoriesWithoutStockFields(t *testing.T) {
	products := []Product{
		{Name: "Case", Category: CategoryAccessory, StockQuantity: intp(1)},
		{Name: "Strap", Category: CategoryAccessory, LowStockThreshold: intp(5)},
		{Name: "Sim tool", Category: CategoryAccessory},
	}
	assert.Empty(t, LowStock(products))
}
