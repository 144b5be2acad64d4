package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportFormat enum constants
const (
	ReportFormatXLSX = "xlsx"
	ReportFormatCSV  = "csv"
)

// ReportStatus enum constants
const (
	ReportPending   = "PENDING"
	ReportRunning   = "RUNNING"
	ReportCompleted = "COMPLETED"
	ReportFailed    = "FAILED"
)

// ReportJob represents an asset report rendered in the background. Clients
// poll it by id; the requester's email is copied in at creation so finished
// jobs stay attributable after account changes.
type ReportJob struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Format         string     `gorm:"type:varchar(10);not null" json:"format"` // xlsx, csv
	Params         string     `gorm:"type:jsonb;not null" json:"params"`       // Snapshot of the requested filters and fields
	Status         string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	FileName       string     `gorm:"type:varchar(255)" json:"file_name"`
	FilePath       string     `gorm:"type:text" json:"-"`
	Error          string     `gorm:"type:text" json:"error,omitempty"`
	RequestedByID  *uuid.UUID `gorm:"type:uuid;index" json:"requested_by_id"`
	RequesterEmail string     `gorm:"type:varchar(255)" json:"requester_email"`
	StartedAt      *time.Time `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
