package portfolio

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

// TermRef is the lightweight category shape embedded in project reads.
type TermRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Project is a portfolio case study. Slug is unique among projects.
type Project struct {
	ID             uuid.UUID
	Title          string
	Slug           string
	Description    string
	ClientName     string
	ProjectURL     *string
	CoverImageURL  *string
	Technologies   []string
	Status         Status
	Featured       bool
	CompletionDate *time.Time
	CreatedBy      *uuid.UUID
	UpdatedBy      *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Categories []TermRef
}

// Filter narrows List results. Nil/empty fields are ignored.
type Filter struct {
	Status       *Status
	Featured     *bool
	CategorySlug string
	Limit        int
	Offset       int
}
