package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Message struct {
	Id           uuid.UUID  `json:"id" db:"id"`
	AssignmentId uuid.UUID  `json:"assignmentId" db:"assignment_id"`
	SenderId     string     `json:"senderId" db:"sender_id"`
	SenderType   string     `json:"senderType" db:"sender_type"` // "worker" or "company"
	Body         string     `json:"body" db:"body"`
	Attachments  *string    `json:"attachments" db:"attachments"` // JSON array of URLs
	ReadAt       *time.Time `json:"readAt" db:"read_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// controller model
type MessageOutputModel struct {
	Id         string `json:"id"`
	SenderId   string `json:"senderId"`
	SenderType string `json:"senderType"`
	Body       string `json:"body"`
	ReadAt     string `json:"readAt,omitempty"`
	CreatedAt  string `json:"createdAt"`
}
