package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model. One row per assignment, created at quote acceptance, never deleted.
type PlatformTransaction struct {
	Id                  uuid.UUID  `json:"id" db:"id"`
	AssignmentId        uuid.UUID  `json:"assignmentId" db:"assignment_id"`
	CompanyPaymentCents int        `json:"companyPaymentCents" db:"company_payment_cents"`
	WorkerPaymentCents  int        `json:"workerPaymentCents" db:"worker_payment_cents"`
	PlatformFeeCents    int        `json:"platformFeeCents" db:"platform_fee_cents"`
	CompanyPaid         bool       `json:"companyPaid" db:"company_paid"`
	WorkerPaid          bool       `json:"workerPaid" db:"worker_paid"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	CompanyPaidAt       *time.Time `json:"companyPaidAt" db:"company_paid_at"`
	WorkerPaidAt        *time.Time `json:"workerPaidAt" db:"worker_paid_at"`
}

// controller model
type TransactionOutputModel struct {
	Id                  string `json:"id"`
	AssignmentId        string `json:"assignmentId"`
	CompanyPaymentCents int    `json:"companyPaymentCents"`
	WorkerPaymentCents  int    `json:"workerPaymentCents"`
	PlatformFeeCents    int    `json:"platformFeeCents"`
	CompanyPaid         bool   `json:"companyPaid"`
	WorkerPaid          bool   `json:"workerPaid"`
	CreatedAt           string `json:"createdAt"`
}
