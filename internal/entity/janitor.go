package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Janitor struct {
	Id              uuid.UUID  `json:"id" db:"id"`
	UserId          string     `json:"userId" db:"user_id"`
	FirstName       string     `json:"firstName" db:"first_name"`
	LastName        string     `json:"lastName" db:"last_name"`
	Email           string     `json:"email" db:"email"`
	Phone           string     `json:"phone" db:"phone"`
	Bio             *string    `json:"bio" db:"bio"`
	HourlyRateCents int        `json:"hourlyRateCents" db:"hourly_rate_cents"`
	Status          string     `json:"status" db:"status"`
	CompletedJobs   int        `json:"completedJobs" db:"completed_jobs"`
	JoinedAt        time.Time  `json:"joinedAt" db:"joined_at"`
	LastActiveAt    *time.Time `json:"lastActiveAt" db:"last_active_at"`
}

// service + repo input model
type CreateJanitorInput struct {
	UserId          string // given
	FirstName       string // given
	LastName        string // given
	Email           string // given
	Phone           string // given
	Bio             *string
	HourlyRateCents int
	// Status should be set: "pending_verification"
	// Id UUID sets automatically
	// JoinedAt sets automatically
}

// patch model: nil fields are left unchanged
type UpdateJanitorProfileInput struct {
	Phone           *string
	Bio             *string
	HourlyRateCents *int
}

// controller model
type JanitorOutputModel struct {
	Id              string `json:"id"`
	UserId          string `json:"userId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	HourlyRateCents int    `json:"hourlyRateCents"`
	Status          string `json:"status"`
	CompletedJobs   int    `json:"completedJobs"`
	JoinedAt        string `json:"joinedAt"`
}
