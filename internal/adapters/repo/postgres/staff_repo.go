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

type StaffRepo struct{ db *gorm.DB }

func NewStaffRepo(db *gorm.DB) *StaffRepo { return &StaffRepo{db: db} }

func (r *StaffRepo) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return nil, errors.New("empty email")
	}
	var s domain.Staff
	if err := r.db.WithContext(ctx).First(&s, "LOWER(email) = ?", e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepo) Save(ctx context.Context, s *domain.Staff) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StaffRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Staff{}).Count(&n).Error
	return n, err
}
