package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/repairshop/internal/domain"
)

type RepairJobRepo struct{ db *gorm.DB }

func NewRepairJobRepo(db *gorm.DB) *RepairJobRepo { return &RepairJobRepo{db: db} }

func (r *RepairJobRepo) Create(ctx context.Context, j *domain.RepairJob) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedDate.IsZero() {
		j.CreatedDate = time.Now()
	}
	if j.Status == "" {
		j.Status = domain.JobStatusPending
	}
	if j.Photos == nil {
		j.Photos = []string{}
	}
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *RepairJobRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.RepairJob, error) {
	var j domain.RepairJob
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *RepairJobRepo) List(ctx context.Context, f domain.JobFilter) ([]domain.RepairJob, error) {
	var list []domain.RepairJob
	q := r.db.WithContext(ctx).Model(&domain.RepairJob{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if err := q.Order("created_date desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *RepairJobRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.RepairJob, error) {
	var list []domain.RepairJob
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("created_date desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *RepairJobRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus, completedDate *time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.RepairJob{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "completed_date": completedDate})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RepairJobRepo) AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	// Read-modify-write on the jsonb column; photo uploads for one job come
	// from a single staff session, so no concurrent appends to guard.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var j domain.RepairJob
		if err := tx.First(&j, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		j.Photos = append(j.Photos, urls...)
		return tx.Model(&domain.RepairJob{}).Where("id = ?", id).Update("photos", j.Photos).Error
	})
}
