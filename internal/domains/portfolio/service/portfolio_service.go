package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"viewtech-backend/internal/domains/portfolio"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/utils"
)

// Retries after the database reports a slug collision that slipped past
// the pre-check (concurrent create with the same title).
const maxWriteRetries = 3

type portfolioService struct {
	repo portfolio.Repository
}

func NewPortfolioService(repo portfolio.Repository) portfolio.Service {
	return &portfolioService{repo: repo}
}

func (s *portfolioService) Create(ctx context.Context, req *portfolio.CreateProjectReq, actor uuid.UUID) (*portfolio.ProjectResp, error) {
	base := utils.GenerateSlug(req.Title)
	if base == "" {
		return nil, portfolio.ErrInvalidTitle
	}

	slug, err := utils.UniqueSlug(ctx, base, s.slugChecker(uuid.Nil))
	if err != nil {
		return nil, err
	}

	status := portfolio.StatusDraft
	if req.Status != "" {
		status = portfolio.Status(req.Status)
		if !status.Valid() {
			return nil, portfolio.ErrInvalidStatus
		}
	}

	now := time.Now().UTC()

	project := &portfolio.Project{
		ID:             uuid.New(),
		Title:          req.Title,
		Slug:           slug,
		Description:    utils.SanitizeHTML(req.Description),
		ClientName:     req.ClientName,
		ProjectURL:     req.ProjectURL,
		CoverImageURL:  req.CoverImageURL,
		Technologies:   req.Technologies,
		Status:         status,
		Featured:       req.Featured,
		CompletionDate: req.CompletionDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if project.Technologies == nil {
		project.Technologies = []string{}
	}
	if actor != uuid.Nil {
		project.CreatedBy = &actor
		project.UpdatedBy = &actor
	}

	created, err := s.createWithRetry(ctx, project, base, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	return portfolio.ProjectToResp(created), nil
}

func (s *portfolioService) createWithRetry(ctx context.Context, project *portfolio.Project, base string, categoryIDs []uuid.UUID) (*portfolio.Project, error) {
	for attempt := 0; ; attempt++ {
		created, err := s.repo.Create(ctx, project, categoryIDs)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, portfolio.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		project.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *portfolioService) GetByIdentifier(ctx context.Context, identifier string) (*portfolio.ProjectResp, error) {
	var project *portfolio.Project
	var err error

	if utils.IsUUID(identifier) {
		project, err = s.repo.GetByID(ctx, uuid.MustParse(identifier))
	} else {
		project, err = s.repo.GetBySlug(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}

	return portfolio.ProjectToResp(project), nil
}

func (s *portfolioService) List(ctx context.Context, q portfolio.ListQuery) ([]portfolio.ProjectResp, pagination.Envelope, error) {
	filter := portfolio.Filter{
		CategorySlug: q.CategorySlug,
		Limit:        q.Page.Limit,
		Offset:       q.Page.Offset(),
	}

	if q.Status != "" {
		status := portfolio.Status(q.Status)
		filter.Status = &status
	}
	if q.Featured != "" {
		featured := q.Featured == "true"
		filter.Featured = &featured
	}

	projects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Envelope{}, err
	}

	return portfolio.ProjectsToResp(projects), pagination.NewEnvelope(q.Page, total), nil
}

func (s *portfolioService) Update(ctx context.Context, id uuid.UUID, req *portfolio.UpdateProjectReq, actor uuid.UUID) (*portfolio.ProjectResp, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	base := ""
	if req.Title != nil && *req.Title != existing.Title {
		base = utils.GenerateSlug(*req.Title)
		if base == "" {
			return nil, portfolio.ErrInvalidTitle
		}
		slug, err := utils.UniqueSlug(ctx, base, s.slugChecker(id))
		if err != nil {
			return nil, err
		}
		existing.Title = *req.Title
		existing.Slug = slug
	}

	if req.Description != nil {
		existing.Description = utils.SanitizeHTML(*req.Description)
	}
	if req.ClientName != nil {
		existing.ClientName = *req.ClientName
	}
	if req.ProjectURL != nil {
		existing.ProjectURL = req.ProjectURL
	}
	if req.CoverImageURL != nil {
		existing.CoverImageURL = req.CoverImageURL
	}
	if req.Technologies != nil {
		existing.Technologies = *req.Technologies
	}
	if req.Featured != nil {
		existing.Featured = *req.Featured
	}
	if req.Status != nil {
		status := portfolio.Status(*req.Status)
		if !status.Valid() {
			return nil, portfolio.ErrInvalidStatus
		}
		existing.Status = status
	}
	if req.CompletionDate != nil {
		existing.CompletionDate = req.CompletionDate
	}

	existing.UpdatedAt = time.Now().UTC()
	if actor != uuid.Nil {
		existing.UpdatedBy = &actor
	}

	updated, err := s.updateWithRetry(ctx, existing, base, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	return portfolio.ProjectToResp(updated), nil
}

func (s *portfolioService) updateWithRetry(ctx context.Context, project *portfolio.Project, base string, categoryIDs *[]uuid.UUID) (*portfolio.Project, error) {
	for attempt := 0; ; attempt++ {
		updated, err := s.repo.Update(ctx, project, categoryIDs)
		if err == nil {
			return updated, nil
		}
		if base == "" || !errors.Is(err, portfolio.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		project.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *portfolioService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *portfolioService) slugChecker(excludeID uuid.UUID) utils.SlugExists {
	return func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugExists(ctx, slug, excludeID)
	}
}
