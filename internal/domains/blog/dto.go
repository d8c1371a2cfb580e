package blog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type CreatePostReq struct {
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Excerpt       string      `json:"excerpt"`
	CoverImageURL string      `json:"coverImageUrl"`
	Status        string      `json:"status"`
	Featured      bool        `json:"featured"`
	PublishedAt   *time.Time  `json:"publishedAt"`
	CategoryIDs   []uuid.UUID `json:"categoryIds"`
	TagIDs        []uuid.UUID `json:"tagIds"`
}

func (r CreatePostReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
		validation.Field(&r.CoverImageURL,
			validation.When(r.CoverImageURL != "", is.URL.Error("coverImageUrl must be a valid URL")),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != "", validation.In("draft", "published").Error("status must be draft or published")),
		),
	)
}

// UpdatePostReq is a partial update: nil fields are left untouched and never
// overwrite stored values.
type UpdatePostReq struct {
	Title         *string      `json:"title"`
	Content       *string      `json:"content"`
	Excerpt       *string      `json:"excerpt"`
	CoverImageURL *string      `json:"coverImageUrl"`
	Status        *string      `json:"status"`
	Featured      *bool        `json:"featured"`
	PublishedAt   *time.Time   `json:"publishedAt"`
	CategoryIDs   *[]uuid.UUID `json:"categoryIds"`
	TagIDs        *[]uuid.UUID `json:"tagIds"`
}

func (r UpdatePostReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 255)),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
		validation.Field(&r.Status,
			validation.In("draft", "published").Error("status must be draft or published"),
		),
	)
}

type PostResp struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty"`
	Status        Status     `json:"status"`
	Featured      bool       `json:"featured"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	Categories    []TermRef  `json:"categories"`
	Tags          []TermRef  `json:"tags"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func PostToResp(p *Post) *PostResp {
	if p == nil {
		return nil
	}

	resp := &PostResp{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		CoverImageURL: p.CoverImageURL,
		Status:        p.Status,
		Featured:      p.Featured,
		PublishedAt:   p.PublishedAt,
		Categories:    p.Categories,
		Tags:          p.Tags,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	if resp.Categories == nil {
		resp.Categories = []TermRef{}
	}
	if resp.Tags == nil {
		resp.Tags = []TermRef{}
	}

	return resp
}

func PostsToResp(posts []Post) []PostResp {
	out := make([]PostResp, 0, len(posts))
	for i := range posts {
		out = append(out, *PostToResp(&posts[i]))
	}
	return out
}
