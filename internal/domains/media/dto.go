package media

import (
	"time"

	"github.com/google/uuid"
)

type MediaResp struct {
	ID         uuid.UUID         `json:"id"`
	FileName   string            `json:"fileName"`
	URL        string            `json:"url"`
	MimeType   string            `json:"mimeType"`
	SizeBytes  int64             `json:"sizeBytes"`
	Width      *int              `json:"width"`
	Height     *int              `json:"height"`
	Variants   map[string]string `json:"variants"`
	UploadedBy *uuid.UUID        `json:"uploadedBy"`
	CreatedAt  time.Time         `json:"createdAt"`
}

func MediaToResp(m *Media) *MediaResp {
	if m == nil {
		return nil
	}
	resp := &MediaResp{
		ID:         m.ID,
		FileName:   m.FileName,
		URL:        m.URL,
		MimeType:   m.MimeType,
		SizeBytes:  m.SizeBytes,
		Width:      m.Width,
		Height:     m.Height,
		Variants:   m.Variants,
		UploadedBy: m.UploadedBy,
		CreatedAt:  m.CreatedAt,
	}
	if resp.Variants == nil {
		resp.Variants = map[string]string{}
	}
	return resp
}

func MediaListToResp(items []Media) []MediaResp {
	out := make([]MediaResp, 0, len(items))
	for i := range items {
		out = append(out, *MediaToResp(&items[i]))
	}
	return out
}
