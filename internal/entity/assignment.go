package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Assignment struct {
	Id                  uuid.UUID  `json:"id" db:"id"`
	JobId               uuid.UUID  `json:"jobId" db:"job_id"`
	WorkerId            string     `json:"workerId" db:"worker_id"`
	QuoteId             uuid.UUID  `json:"quoteId" db:"quote_id"`
	Status              string     `json:"status" db:"status"`
	FinalAmountCents    int        `json:"finalAmountCents" db:"final_amount_cents"`
	WorkerEarningsCents int        `json:"workerEarningsCents" db:"worker_earnings_cents"`
	PlatformFeeCents    int        `json:"platformFeeCents" db:"platform_fee_cents"`
	StartedAt           *time.Time `json:"startedAt" db:"started_at"`
	CompletedAt         *time.Time `json:"completedAt" db:"completed_at"`
	CanceledAt          *time.Time `json:"canceledAt" db:"canceled_at"`
	ReportedHours       *int       `json:"reportedHours" db:"reported_hours"`
	CompletionNotes     *string    `json:"completionNotes" db:"completion_notes"`
	CompanyRating       *int       `json:"companyRating" db:"company_rating"`
	WorkerRating        *int       `json:"workerRating" db:"worker_rating"`
	AssignedAt          time.Time  `json:"assignedAt" db:"assigned_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`
}

// controller model
type AssignmentOutputModel struct {
	Id                  string `json:"id"`
	JobId               string `json:"jobId"`
	WorkerId            string `json:"workerId"`
	QuoteId             string `json:"quoteId"`
	Status              string `json:"status"`
	FinalAmountCents    int    `json:"finalAmountCents"`
	WorkerEarningsCents int    `json:"workerEarningsCents"`
	PlatformFeeCents    int    `json:"platformFeeCents"`
	StartedAt           string `json:"startedAt,omitempty"`
	CompletedAt         string `json:"completedAt,omitempty"`
	ReportedHours       *int   `json:"reportedHours,omitempty"`
	AssignedAt          string `json:"assignedAt"`
}
