package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/repairshop/internal/domain"
)

func newJobUC(store *memStore, storage *memStorage) *JobUC {
	return &JobUC{
		Jobs:      memJobs{store},
		Customers: &CustomerUC{Customers: memCustomers{store}, Jobs: memJobs{store}},
		Storage:   storage,
	}
}

func TestIntakeCreatesCustomerAndPendingJob(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	uc := newJobUC(store, newMemStorage())

	job, err := uc.Intake(ctx, IntakeInput{
		Customer:           domain.Customer{Name: "Ravi Sharma", Phone: "9876543210"},
		DeviceBrand:        "Apple",
		DeviceModel:        "iPhone 13",
		ProblemDescription: "cracked screen",
		EstimatedCost:      5000,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.JobStatusPending, job.Status)
	assert.Equal(t, "Ravi Sharma", job.CustomerName)
	assert.Nil(t, job.CompletedDate)
	assert.NotNil(t, job.Photos)
	assert.Len(t, store.customers, 1)

	// Second intake for the same phone reuses the customer.
	again, err := uc.Intake(ctx, IntakeInput{
		Customer:    domain.Customer{Name: "Ravi Sharma", Phone: "9876543210"},
		DeviceBrand: "Apple", DeviceModel: "iPhone 12",
	})
	require.NoError(t, err)
	assert.Equal(t, job.CustomerID, again.CustomerID)
	assert.Len(t, store.customers, 1)
}

func TestUpdateStatusCompletedDateRule(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	uc := newJobUC(store, newMemStorage())

	job, err := uc.Intake(ctx, IntakeInput{
		Customer:    domain.Customer{Name: "A", Phone: "111"},
		DeviceBrand: "Xiaomi", DeviceModel: "Note 11",
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(ctx, job.ID, domain.JobStatusDelivered))
	got, _ := uc.Get(ctx, job.ID)
	require.NotNil(t, got.CompletedDate)

	// Moving back to pending clears the completion timestamp again.
	require.NoError(t, uc.UpdateStatus(ctx, job.ID, domain.JobStatusPending))
	got, _ = uc.Get(ctx, job.ID)
	assert.Nil(t, got.CompletedDate)

	assert.ErrorIs(t, uc.UpdateStatus(ctx, job.ID, "shipped"), domain.ErrInvalidStatus)
}

func TestAttachPhoto(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	storage := newMemStorage()
	uc := newJobUC(store, storage)

	job, err := uc.Intake(ctx, IntakeInput{
		Customer:    domain.Customer{Name: "B", Phone: "222"},
		DeviceBrand: "Oppo", DeviceModel: "A54",
	})
	require.NoError(t, err)

	url, err := uc.AttachPhoto(ctx, job.ID, "front side.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/repair-photos/"+job.ID.String()+"/front_side.jpg", url)

	got, _ := uc.Get(ctx, job.ID)
	require.Len(t, got.Photos, 1)
	assert.Equal(t, url, got.Photos[0])
}

func TestAttachPhotoUnknownJob(t *testing.T) {
	store := newMemStore()
	uc := newJobUC(store, newMemStorage())
	_, err := uc.AttachPhoto(context.Background(), uuid.New(), "x.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
