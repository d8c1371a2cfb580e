package taxonomy

import (
	"time"

	"github.com/google/uuid"
)

// Category groups blog posts and portfolio projects. Slug is unique among
// categories and derived from the name.
type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	// PostCount is how many blog posts reference the category; filled on
	// reads, never persisted.
	PostCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag labels blog posts. Slug is unique among tags.
type Tag struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	PostCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}
