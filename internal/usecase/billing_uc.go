package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/phenrril/repairshop/internal/domain"
)

type BillingUC struct {
	Sales    domain.SaleRepo
	Jobs     domain.RepairJobRepo
	Products domain.ProductRepo
	GSTRate  float64
}

type CheckoutItem struct {
	ProductID *uuid.UUID `json:"productId"`
	Name      string     `json:"name"`
	Price     *float64   `json:"price"`
	Quantity  int        `json:"quantity"`
	IsService bool       `json:"isService"`
}

type CheckoutInput struct {
	JobID         uuid.UUID      `json:"jobId"`
	Items         []CheckoutItem `json:"items"`
	PaymentMethod string         `json:"paymentMethod"`
}

// Checkout turns a repair job into a sale: it freezes the line items,
// computes the invoice totals, and persists the sale together with the stock
// decrements and the job's completion in a single transaction. A job can be
// billed at most once; re-billing or partial payments are not modeled.
func (uc *BillingUC) Checkout(ctx context.Context, in CheckoutInput) (*domain.Sale, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptySale
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, domain.ErrInvalidPayment
	}

	job, err := uc.Jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.Sales.FindByJob(ctx, in.JobID); err == nil {
		return nil, domain.ErrAlreadyBilled
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	items, err := uc.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	totals := domain.ComputeInvoice(items, uc.GSTRate)
	sale := &domain.Sale{
		RepairJobID:   job.ID,
		CustomerID:    job.CustomerID,
		CustomerName:  job.CustomerName,
		Items:         items,
		SubTotal:      totals.SubTotal,
		GSTRate:       totals.GSTRate,
		GSTAmount:     totals.GSTAmount,
		TotalAmount:   totals.TotalAmount,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
	}
	if err := uc.Sales.CreateForJob(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// resolveItems freezes each requested line against the catalog. Lines that
// reference a product inherit its name, category flag and current price; an
// explicit price always wins so the desk can charge something other than the
// listed price. Free-form lines (no product reference) need a name and a
// price of their own.
func (uc *BillingUC) resolveItems(ctx context.Context, in []CheckoutItem) ([]domain.SaleItem, error) {
	out := make([]domain.SaleItem, 0, len(in))
	for _, req := range in {
		qty := req.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, errors.New("quantity cannot be negative")
		}
		item := domain.SaleItem{
			ProductID: req.ProductID,
			Name:      strings.TrimSpace(req.Name),
			Quantity:  qty,
			IsService: req.IsService,
		}
		if req.ProductID != nil {
			p, err := uc.Products.FindByID(ctx, *req.ProductID)
			if err != nil {
				return nil, err
			}
			item.Name = p.Name
			item.IsService = p.Category == domain.CategoryService
			item.Price = p.CurrentPrice
		}
		if req.Price != nil {
			if *req.Price < 0 {
				return nil, errors.New("price cannot be negative")
			}
			item.Price = *req.Price
		}
		if item.Name == "" {
			return nil, errors.New("item name required")
		}
		if req.ProductID == nil && req.Price == nil {
			return nil, errors.New("item price required")
		}
		out = append(out, item)
	}
	return out, nil
}

func (uc *BillingUC) Get(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	return uc.Sales.FindByID(ctx, id)
}

func (uc *BillingUC) GetByJob(ctx context.Context, jobID uuid.UUID) (*domain.Sale, error) {
	return uc.Sales.FindByJob(ctx, jobID)
}
