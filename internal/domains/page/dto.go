package page

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreatePageReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

func (r CreatePageReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.Status, validation.In("", "draft", "published").Error("status must be draft or published")),
	)
}

type UpdatePageReq struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

func (r UpdatePageReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 255)),
		validation.Field(&r.Status, validation.In("draft", "published").Error("status must be draft or published")),
	)
}

type PageResp struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func PageToResp(p *Page) *PageResp {
	if p == nil {
		return nil
	}
	return &PageResp{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Content,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func PagesToResp(pages []Page) []PageResp {
	out := make([]PageResp, 0, len(pages))
	for i := range pages {
		out = append(out, *PageToResp(&pages[i]))
	}
	return out
}
