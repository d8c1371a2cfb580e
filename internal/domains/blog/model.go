package blog

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

// TermRef is a category or tag reference embedded in a post. The taxonomy
// domain owns the full entities.
type TermRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Post is a blog article. Slug is unique across all posts and derived from
// the title; it only changes when the title does.
type Post struct {
	ID            uuid.UUID
	Title         string
	Slug          string
	Content       string // sanitized HTML
	Excerpt       string
	CoverImageURL *string
	Status        Status
	Featured      bool
	PublishedAt   *time.Time
	CreatedBy     *uuid.UUID
	UpdatedBy     *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Categories []TermRef
	Tags       []TermRef
}

// Filter narrows a post listing. Nil/empty fields are ignored. Limit 0 means
// no limit.
type Filter struct {
	Status       *Status
	Featured     *bool
	CategorySlug string
	TagSlug      string
	Limit        int
	Offset       int
}
