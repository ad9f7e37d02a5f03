package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/phenrril/repairshop/internal/domain"
)

type JobUC struct {
	Jobs      domain.RepairJobRepo
	Customers *CustomerUC
	Storage   domain.FileStorage
}

// IntakeInput carries the front-desk form: who brought the device and what
// is wrong with it. Photos come later through AttachPhoto.
type IntakeInput struct {
	Customer            domain.Customer
	DeviceBrand         string
	DeviceModel         string
	ProblemDescription  string
	ReceivedAccessories string
	EstimatedCost       float64
}

func (uc *JobUC) Intake(ctx context.Context, in IntakeInput) (*domain.RepairJob, error) {
	if strings.TrimSpace(in.DeviceBrand) == "" || strings.TrimSpace(in.DeviceModel) == "" {
		return nil, errors.New("device brand and model required")
	}
	customerID, err := uc.Customers.CreateOrGet(ctx, in.Customer)
	if err != nil {
		return nil, err
	}
	job := &domain.RepairJob{
		CustomerID:          customerID,
		CustomerName:        in.Customer.Name,
		DeviceBrand:         in.DeviceBrand,
		DeviceModel:         in.DeviceModel,
		ProblemDescription:  in.ProblemDescription,
		ReceivedAccessories: in.ReceivedAccessories,
		Photos:              []string{},
		EstimatedCost:       in.EstimatedCost,
		Status:              domain.JobStatusPending,
	}
	if err := uc.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUC) Get(ctx context.Context, id uuid.UUID) (*domain.RepairJob, error) {
	return uc.Jobs.FindByID(ctx, id)
}

func (uc *JobUC) List(ctx context.Context, f domain.JobFilter) ([]domain.RepairJob, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return uc.Jobs.List(ctx, f)
}

// UpdateStatus does not police transition order; the desk staff own that.
// It does keep the CompletedDate invariant: set exactly while the status is
// completed or delivered, cleared on any move back.
func (uc *JobUC) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	var completed *time.Time
	if status.Done() {
		now := time.Now()
		completed = &now
	}
	return uc.Jobs.UpdateStatus(ctx, id, status, completed)
}

// AttachPhoto stores one device photo under the job's folder and records the
// returned fetch location on the job. The job exists before any photo URL is
// known, so a failed upload leaves a perfectly valid job behind.
func (uc *JobUC) AttachPhoto(ctx context.Context, jobID uuid.UUID, filename string, r io.Reader) (string, error) {
	if _, err := uc.Jobs.FindByID(ctx, jobID); err != nil {
		return "", err
	}
	name := sanitizeFileName(filename)
	if name == "" {
		return "", errors.New("empty file name")
	}
	url, err := uc.Storage.Save("repair-photos/"+jobID.String()+"/"+name, r)
	if err != nil {
		return "", err
	}
	if err := uc.Jobs.AppendPhotos(ctx, jobID, []string{url}); err != nil {
		return "", err
	}
	return url, nil
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
