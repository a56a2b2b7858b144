package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Job struct {
	Id               uuid.UUID  `json:"id" db:"id"`
	OrgId            string     `json:"orgId" db:"org_id"`
	CreatedBy        string     `json:"createdBy" db:"created_by"`
	Title            string     `json:"title" db:"title"`
	Description      *string    `json:"description" db:"description"`
	ServiceType      *string    `json:"serviceType" db:"service_type"`
	Location         *string    `json:"location" db:"location"`
	Latitude         *string    `json:"latitude" db:"latitude"`
	Longitude        *string    `json:"longitude" db:"longitude"`
	StartTime        *time.Time `json:"startTime" db:"start_time"`
	EndTime          *time.Time `json:"endTime" db:"end_time"`
	BudgetCents      int        `json:"budgetCents" db:"budget_cents"`
	Currency         string     `json:"currency" db:"currency"`
	BiddingEndsAt    *time.Time `json:"biddingEndsAt" db:"bidding_ends_at"`
	AutoAssign       bool       `json:"autoAssign" db:"auto_assign"`
	IsBroadcast      bool       `json:"isBroadcast" db:"is_broadcast"`
	PlatformFeeBps   int        `json:"platformFeeBps" db:"platform_fee_bps"`
	Status           string     `json:"status" db:"status"`
	AssignedWorkerId *string    `json:"assignedWorkerId" db:"assigned_worker_id"`
	AcceptedQuoteId  *uuid.UUID `json:"acceptedQuoteId" db:"accepted_quote_id"`
	FinalAmountCents *int       `json:"finalAmountCents" db:"final_amount_cents"`
	PlatformFeeCents *int       `json:"platformFeeCents" db:"platform_fee_cents"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
	CompletedAt      *time.Time `json:"completedAt" db:"completed_at"`
}

// service + repo input model
type CreateJobInput struct {
	OrgId          string // given
	CreatedBy      string // given
	Title          string // given
	Description    *string
	ServiceType    *string
	Location       *string
	Latitude       *string
	Longitude      *string
	StartTime      *time.Time
	EndTime        *time.Time
	BudgetCents    int
	Currency       string
	BiddingEndsAt  *time.Time
	AutoAssign     bool
	Status         string // "draft" or "open"
	PlatformFeeBps int    // defaulted by the service when zero
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// patch model: nil fields are left unchanged
type UpdateJobInput struct {
	Title         *string
	Description   *string
	ServiceType   *string
	Location      *string
	Latitude      *string
	Longitude     *string
	StartTime     *time.Time
	EndTime       *time.Time
	BudgetCents   *int
	Currency      *string
	BiddingEndsAt *time.Time
}

// TouchesSchedule reports whether the patch changes start or end time.
func (p *UpdateJobInput) TouchesSchedule() bool {
	return p.StartTime != nil || p.EndTime != nil
}

// TouchesBudget reports whether the patch changes the budget.
func (p *UpdateJobInput) TouchesBudget() bool {
	return p.BudgetCents != nil
}

// worker-facing listing filter
type BrowseJobsInput struct {
	ServiceType    *string
	MinBudgetCents *int
	MaxBudgetCents *int
}

// controller model
type JobOutputModel struct {
	Id               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description,omitempty"`
	ServiceType      string  `json:"serviceType,omitempty"`
	Location         string  `json:"location,omitempty"`
	StartTime        string  `json:"startTime,omitempty"`
	EndTime          string  `json:"endTime,omitempty"`
	BudgetCents      int     `json:"budgetCents"`
	Currency         string  `json:"currency"`
	BiddingEndsAt    string  `json:"biddingEndsAt,omitempty"`
	IsBroadcast      bool    `json:"isBroadcast"`
	Status           string  `json:"status"`
	AssignedWorkerId string  `json:"assignedWorkerId,omitempty"`
	FinalAmountCents *int    `json:"finalAmountCents,omitempty"`
	PlatformFeeCents *int    `json:"platformFeeCents,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}
