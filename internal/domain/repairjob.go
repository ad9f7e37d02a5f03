package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusDelivered  JobStatus = "delivered"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusDelivered:
		return true
	}
	return false
}

// Done reports whether the job has been worked to completion. CompletedDate
// must be set exactly when Done is true.
func (s JobStatus) Done() bool {
	return s == JobStatusCompleted || s == JobStatusDelivered
}

type RepairJob struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index" json:"customerId"`
	// Snapshot of the customer name at intake time; intentionally stale if
	// the customer record changes later.
	CustomerName        string     `gorm:"size:140" json:"customerName"`
	DeviceBrand         string     `gorm:"size:80" json:"deviceBrand"`
	DeviceModel         string     `gorm:"size:140" json:"deviceModel"`
	ProblemDescription  string     `gorm:"type:text" json:"problemDescription"`
	ReceivedAccessories string     `gorm:"size:255" json:"receivedAccessories"`
	Photos              []string   `gorm:"type:jsonb;serializer:json" json:"photos"`
	EstimatedCost       float64    `gorm:"type:decimal(12,2)" json:"estimatedCost"`
	FinalCost           *float64   `gorm:"type:decimal(12,2)" json:"finalCost"`
	Status              JobStatus  `gorm:"type:varchar(20);index" json:"status"`
	CreatedDate         time.Time  `json:"createdDate"`
	CompletedDate       *time.Time `json:"completedDate"`
}
