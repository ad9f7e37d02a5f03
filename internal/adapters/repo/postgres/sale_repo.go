package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/repairshop/internal/domain"
)

type SaleRepo struct{ db *gorm.DB }

func NewSaleRepo(db *gorm.DB) *SaleRepo { return &SaleRepo{db: db} }

// CreateForJob runs the whole checkout write set in one transaction: invoice
// number from the database sequence, sale plus items, stock decrements, and
// the job flipped to completed with its final cost. Either everything lands
// or nothing does.
func (r *SaleRepo) CreateForJob(ctx context.Context, s *domain.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Date.IsZero() {
		s.Date = time.Now()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Raw("SELECT nextval('invoice_number_seq')").Scan(&n).Error; err != nil {
			return err
		}
		s.InvoiceNumber = fmt.Sprintf("INV-%06d", n)

		for i := range s.Items {
			if s.Items[i].ID == uuid.Nil {
				s.Items[i].ID = uuid.New()
			}
			s.Items[i].SaleID = s.ID
			s.Items[i].Position = i
		}

		if err := tx.Create(s).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyBilled
			}
			return err
		}

		for _, it := range s.Items {
			if it.IsService || it.ProductID == nil {
				continue
			}
			if err := tx.Model(&domain.Product{}).
				Where("id = ? AND stock_quantity IS NOT NULL", *it.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", it.Quantity)).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		res := tx.Model(&domain.RepairJob{}).Where("id = ?", s.RepairJobID).
			Updates(map[string]any{
				"status":         domain.JobStatusCompleted,
				"completed_date": &now,
				"final_cost":     s.TotalAmount,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *SaleRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	var s domain.Sale
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) FindByJob(ctx context.Context, jobID uuid.UUID) (*domain.Sale, error) {
	var s domain.Sale
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&s, "repair_job_id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
