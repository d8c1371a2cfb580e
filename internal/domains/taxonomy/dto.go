package taxonomy

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateCategoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

type UpdateCategoryReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r UpdateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

type CreateTagReq struct {
	Name string `json:"name"`
}

func (r CreateTagReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
	)
}

type UpdateTagReq struct {
	Name *string `json:"name"`
}

func (r UpdateTagReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 100)),
	)
}

type CategoryResp struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PostCount   int       `json:"postCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func CategoryToResp(c *Category) *CategoryResp {
	if c == nil {
		return nil
	}
	return &CategoryResp{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		PostCount:   c.PostCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func CategoriesToResp(categories []Category) []CategoryResp {
	out := make([]CategoryResp, 0, len(categories))
	for i := range categories {
		out = append(out, *CategoryToResp(&categories[i]))
	}
	return out
}

type TagResp struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int       `json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func TagToResp(t *Tag) *TagResp {
	if t == nil {
		return nil
	}
	return &TagResp{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		PostCount: t.PostCount,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func TagsToResp(tags []Tag) []TagResp {
	out := make([]TagResp, 0, len(tags))
	for i := range tags {
		out = append(out, *TagToResp(&tags[i]))
	}
	return out
}
