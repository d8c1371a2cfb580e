package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"viewtech-backend/internal/domains/page"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/utils"
)

const maxWriteRetries = 3

type pageService struct {
	repo page.Repository
}

func NewPageService(repo page.Repository) page.Service {
	return &pageService{repo: repo}
}

func (s *pageService) Create(ctx context.Context, req *page.CreatePageReq, actor uuid.UUID) (*page.PageResp, error) {
	base := utils.GenerateSlug(req.Title)
	if base == "" {
		return nil, page.ErrInvalidTitle
	}

	slug, err := utils.UniqueSlug(ctx, base, s.slugChecker(uuid.Nil))
	if err != nil {
		return nil, err
	}

	status := page.StatusDraft
	if req.Status != "" {
		status = page.Status(req.Status)
		if !status.Valid() {
			return nil, page.ErrInvalidStatus
		}
	}

	now := time.Now().UTC()

	p := &page.Page{
		ID:        uuid.New(),
		Title:     req.Title,
		Slug:      slug,
		Content:   utils.SanitizeHTML(req.Content),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if actor != uuid.Nil {
		p.CreatedBy = &actor
		p.UpdatedBy = &actor
	}

	for attempt := 0; ; attempt++ {
		created, err := s.repo.Create(ctx, p)
		if err == nil {
			return page.PageToResp(created), nil
		}
		if !errors.Is(err, page.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		p.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *pageService) GetByIdentifier(ctx context.Context, identifier string) (*page.PageResp, error) {
	var p *page.Page
	var err error

	if utils.IsUUID(identifier) {
		p, err = s.repo.GetByID(ctx, uuid.MustParse(identifier))
	} else {
		p, err = s.repo.GetBySlug(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}

	return page.PageToResp(p), nil
}

func (s *pageService) List(ctx context.Context, q page.ListQuery) ([]page.PageResp, pagination.Envelope, error) {
	filter := page.Filter{
		Limit:  q.Page.Limit,
		Offset: q.Page.Offset(),
	}
	if q.Status != "" {
		status := page.Status(q.Status)
		filter.Status = &status
	}

	pages, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Envelope{}, err
	}

	return page.PagesToResp(pages), pagination.NewEnvelope(q.Page, total), nil
}

func (s *pageService) Update(ctx context.Context, id uuid.UUID, req *page.UpdatePageReq, actor uuid.UUID) (*page.PageResp, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	base := ""
	if req.Title != nil && *req.Title != existing.Title {
		base = utils.GenerateSlug(*req.Title)
		if base == "" {
			return nil, page.ErrInvalidTitle
		}
		slug, err := utils.UniqueSlug(ctx, base, s.slugChecker(id))
		if err != nil {
			return nil, err
		}
		existing.Title = *req.Title
		existing.Slug = slug
	}

	if req.Content != nil {
		existing.Content = utils.SanitizeHTML(*req.Content)
	}
	if req.Status != nil {
		status := page.Status(*req.Status)
		if !status.Valid() {
			return nil, page.ErrInvalidStatus
		}
		existing.Status = status
	}

	existing.UpdatedAt = time.Now().UTC()
	if actor != uuid.Nil {
		existing.UpdatedBy = &actor
	}

	for attempt := 0; ; attempt++ {
		updated, err := s.repo.Update(ctx, existing)
		if err == nil {
			return page.PageToResp(updated), nil
		}
		if base == "" || !errors.Is(err, page.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		existing.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *pageService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *pageService) slugChecker(excludeID uuid.UUID) utils.SlugExists {
	return func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugExists(ctx, slug, excludeID)
	}
}
