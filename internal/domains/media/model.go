package media

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media is an uploaded file. Images get resized variants built by the worker
// after upload; other files are stored as-is.
type Media struct {
	ID         uuid.UUID
	FileName   string
	StorageKey string
	URL        string
	MimeType   string
	SizeBytes  int64
	Width      *int
	Height     *int
	// Variants maps variant name (large/medium/thumbnail) to its public URL.
	Variants   map[string]string
	UploadedBy *uuid.UUID
	CreatedAt  time.Time
}

func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.MimeType, "image/")
}

// StoragePrefix is the object-storage prefix holding the original and all
// variants, so a single prefix delete removes everything.
func (m *Media) StoragePrefix() string {
	return "media/" + m.ID.String() + "/"
}

type Filter struct {
	MimePrefix string
	Limit      int
	Offset     int
}
