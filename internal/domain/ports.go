package domain

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

type CustomerRepo interface {
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	FindByName(ctx context.Context, name string) (*Customer, error)
	// Create inserts the customer and reports ErrDuplicatePhone when another
	// row already owns the phone number.
	Create(ctx context.Context, c *Customer) error
}

type JobFilter struct {
	Status JobStatus // empty matches every status
}

type RepairJobRepo interface {
	Create(ctx context.Context, j *RepairJob) error
	FindByID(ctx context.Context, id uuid.UUID) (*RepairJob, error)
	List(ctx context.Context, f JobFilter) ([]RepairJob, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]RepairJob, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status JobStatus, completedDate *time.Time) error
	AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) error
}

type ProductRepo interface {
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Save(ctx context.Context, p *Product) error
}

type SaleRepo interface {
	// CreateForJob persists the sale, decrements accessory stock for items
	// that reference a product, and marks the repair job completed — all in
	// one transaction. The invoice number is assigned here. ErrAlreadyBilled
	// is returned when the job already has a sale.
	CreateForJob(ctx context.Context, s *Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByJob(ctx context.Context, jobID uuid.UUID) (*Sale, error)
}

type StaffRepo interface {
	FindByEmail(ctx context.Context, email string) (*Staff, error)
	Save(ctx context.Context, s *Staff) error
	Count(ctx context.Context) (int64, error)
}

// FileStorage is the binary object store used for device photos: it takes a
// logical path plus raw bytes and hands back a fetch location.
type FileStorage interface {
	Save(path string, r io.Reader) (string, error)
}
