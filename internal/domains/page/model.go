package page

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Page is a static site page (about, services, privacy...). Slug is unique.
type Page struct {
	ID        uuid.UUID
	Title     string
	Slug      string
	Content   string
	Status    Status
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Filter struct {
	Status *Status
	Limit  int
	Offset int
}
