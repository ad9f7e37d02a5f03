package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/phenrril/repairshop/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
}

func (uc *ProductUC) List(ctx context.Context) ([]domain.Product, error) {
	return uc.Products.List(ctx)
}

func (uc *ProductUC) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, errors.New("product name required")
	}
	if !p.Category.Valid() {
		return nil, errors.New("category must be service or accessory")
	}
	if p.DefaultPrice < 0 || p.CurrentPrice < 0 {
		return nil, errors.New("price cannot be negative")
	}
	if p.CurrentPrice == 0 {
		p.CurrentPrice = p.DefaultPrice
	}
	if p.Category == domain.CategoryService {
		// Stock fields carry no meaning for services.
		p.StockQuantity = nil
		p.LowStockThreshold = nil
		p.SupplierDetails = nil
	}
	if err := uc.Products.Save(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (uc *ProductUC) LowStock(ctx context.Context) ([]domain.Product, error) {
	all, err := uc.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.LowStock(all), nil
}
