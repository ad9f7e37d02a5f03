package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/repairshop/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	p := strings.TrimSpace(phone)
	if p == "" {
		return nil, errors.New("empty phone")
	}
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "phone = ?", p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) FindByName(ctx context.Context, name string) (*domain.Customer, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, errors.New("empty name")
	}
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "LOWER(name) = LOWER(?)", n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedDate.IsZero() {
		c.CreatedDate = time.Now()
	}
	c.Phone = strings.TrimSpace(c.Phone)
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicatePhone
		}
		return err
	}
	return nil
}
