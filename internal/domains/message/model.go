package message

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusUnread    Status = "unread"
	StatusRead      Status = "read"
	StatusResponded Status = "responded"
)

func (s Status) Valid() bool {
	return s == StatusUnread || s == StatusRead || s == StatusResponded
}

// Message is a contact-form submission.
type Message struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        *string
	Subject      string
	Body         string
	Status       Status
	ResponseText *string
	RespondedAt  *time.Time
	CreatedAt    time.Time
}

type Filter struct {
	Status *Status
	Limit  int
	Offset int
}
