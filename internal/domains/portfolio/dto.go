package portfolio

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type CreateProjectReq struct {
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	ClientName     string      `json:"clientName"`
	ProjectURL     *string     `json:"projectUrl"`
	CoverImageURL  *string     `json:"coverImageUrl"`
	Technologies   []string    `json:"technologies"`
	Status         string      `json:"status"`
	Featured       bool        `json:"featured"`
	CompletionDate *time.Time  `json:"completionDate"`
	CategoryIDs    []uuid.UUID `json:"categoryIds"`
}

func (r CreateProjectReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description, validation.Required.Error("description is required")),
		validation.Field(&r.ClientName, validation.Length(0, 255)),
		validation.Field(&r.ProjectURL, is.URL),
		validation.Field(&r.CoverImageURL, is.URL),
		validation.Field(&r.Status, validation.In("", "draft", "published").Error("status must be draft or published")),
	)
}

type UpdateProjectReq struct {
	Title          *string      `json:"title"`
	Description    *string      `json:"description"`
	ClientName     *string      `json:"clientName"`
	ProjectURL     *string      `json:"projectUrl"`
	CoverImageURL  *string      `json:"coverImageUrl"`
	Technologies   *[]string    `json:"technologies"`
	Status         *string      `json:"status"`
	Featured       *bool        `json:"featured"`
	CompletionDate *time.Time   `json:"completionDate"`
	CategoryIDs    *[]uuid.UUID `json:"categoryIds"`
}

func (r UpdateProjectReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 255)),
		validation.Field(&r.ClientName, validation.Length(0, 255)),
		validation.Field(&r.ProjectURL, is.URL),
		validation.Field(&r.CoverImageURL, is.URL),
		validation.Field(&r.Status, validation.In("draft", "published").Error("status must be draft or published")),
	)
}

type ProjectResp struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Description    string     `json:"description"`
	ClientName     string     `json:"clientName"`
	ProjectURL     *string    `json:"projectUrl"`
	CoverImageURL  *string    `json:"coverImageUrl"`
	Technologies   []string   `json:"technologies"`
	Status         Status     `json:"status"`
	Featured       bool       `json:"featured"`
	CompletionDate *time.Time `json:"completionDate"`
	Categories     []TermRef  `json:"categories"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func ProjectToResp(p *Project) *ProjectResp {
	if p == nil {
		return nil
	}
	resp := &ProjectResp{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Description:    p.Description,
		ClientName:     p.ClientName,
		ProjectURL:     p.ProjectURL,
		CoverImageURL:  p.CoverImageURL,
		Technologies:   p.Technologies,
		Status:         p.Status,
		Featured:       p.Featured,
		CompletionDate: p.CompletionDate,
		Categories:     p.Categories,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if resp.Technologies == nil {
		resp.Technologies = []string{}
	}
	if resp.Categories == nil {
		resp.Categories = []TermRef{}
	}
	return resp
}

func ProjectsToResp(projects []Project) []ProjectResp {
	out := make([]ProjectResp, 0, len(projects))
	for i := range projects {
		out = append(out, *ProjectToResp(&projects[i]))
	}
	return out
}
