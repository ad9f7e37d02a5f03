package domain

// InvoiceTotals is the arithmetic of an invoice before any display rounding.
type InvoiceTotals struct {
	SubTotal    float64 `json:"subTotal"`
	GSTRate     float64 `json:"gstRate"`
	GSTAmount   float64 `json:"gstAmount"`
	TotalAmount float64 `json:"totalAmount"`
}

// ComputeInvoice sums the line items and applies the configured GST rate.
// An empty item list yields all zeros. Rounding is left to the presentation
// layer.
func ComputeInvoice(items []SaleItem, gstRate float64) InvoiceTotals {
	var sub float64
	for _, it := range items {
		sub += it.Price * float64(it.Quantity)
	}
	gst := sub * gstRate
	return InvoiceTotals{
		SubTotal:    sub,
		GSTRate:     gstRate,
		GSTAmount:   gst,
		TotalAmount: sub + gst,
	}
}
