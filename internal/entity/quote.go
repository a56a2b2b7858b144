package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Quote struct {
	Id             uuid.UUID  `json:"id" db:"id"`
	JobId          uuid.UUID  `json:"jobId" db:"job_id"`
	WorkerId       string     `json:"workerId" db:"worker_id"`
	AmountCents    int        `json:"amountCents" db:"amount_cents"`
	Message        *string    `json:"message" db:"message"`
	EstimatedHours *int       `json:"estimatedHours" db:"estimated_hours"`
	AvailableDate  *time.Time `json:"availableDate" db:"available_date"`
	Status         string     `json:"status" db:"status"`
	SubmittedAt    time.Time  `json:"submittedAt" db:"submitted_at"`
	RespondedAt    *time.Time `json:"respondedAt" db:"responded_at"`
}

// service + repo input model
type CreateQuoteInput struct {
	JobId          string // given
	WorkerId       string // given
	AmountCents    int    // given
	Message        *string
	EstimatedHours *int
	AvailableDate  *time.Time
	// Status should be set: "pending"
	// Id UUID sets automatically
	// SubmittedAt sets automatically
}

// controller model
type QuoteOutputModel struct {
	Id          string `json:"id"`
	JobId       string `json:"jobId"`
	WorkerId    string `json:"workerId"`
	AmountCents int    `json:"amountCents"`
	Message     string `json:"message,omitempty"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submittedAt"`
	RespondedAt string `json:"respondedAt,omitempty"`
}
