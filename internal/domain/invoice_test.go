package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeInvoice(t *testing.T) {
	items := []SaleItem{
		{Name: "Screen replacement", Price: 500, Quantity: 2, IsService: true},
		{Name: "Tempered glass", Price: 1200, Quantity: 1},
	}
	got := ComputeInvoice(items, 0.18)

	assert.Equal(t, 2200.00, got.SubTotal)
	assert.Equal(t, 396.00, got.GSTAmount)
	assert.Equal(t, 2596.00, got.TotalAmount)
	assert.Equal(t, 0.18, got.GSTRate)
}

func TestComputeInvoiceTotalIsSubPlusGST(t *testing.T) {
	cases := [][]SaleItem{
		{{Price: 999.99, Quantity: 3}},
		{{Price: 50, Quantity: 1}, {Price: 75.5, Quantity: 2}, {Price: 0, Quantity: 10}},
		{{Price: 1, Quantity: 1}},
	}
	for _, items := range cases {
		got := ComputeInvoice(items, 0.18)
		var sub float64
		for _, it := range items {
			sub += it.Price * float64(it.Quantity)
		}
		assert.Equal(t, sub, got.SubTotal)
		assert.Equal(t, got.SubTotal+got.GSTAmount, got.TotalAmount)
		assert.Equal(t, got.SubTotal*0.18, got.GSTAmount)
	}
}

func TestComputeInvoiceEmpty(t *testing.T) {
	got := ComputeInvoice(nil, 0.18)
	assert.Zero(t, got.SubTotal)
	assert.Zero(t, got.GSTAmount)
	assert.Zero(t, got.TotalAmount)
}
