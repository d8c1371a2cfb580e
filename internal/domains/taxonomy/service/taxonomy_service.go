package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"viewtech-backend/internal/domains/taxonomy"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/utils"
)

// maxWriteRetries bounds how many times a write is replayed with a fresh
// suffixed slug after the unique constraint rejects the previous one.
const maxWriteRetries = 3

type taxonomyService struct {
	categories taxonomy.CategoryRepository
	tags       taxonomy.TagRepository
}

func NewTaxonomyService(categories taxonomy.CategoryRepository, tags taxonomy.TagRepository) taxonomy.Service {
	return &taxonomyService{categories: categories, tags: tags}
}

func (s *taxonomyService) CreateCategory(ctx context.Context, req *taxonomy.CreateCategoryReq) (*taxonomy.CategoryResp, error) {
	base := utils.GenerateSlug(req.Name)
	if base == "" {
		return nil, taxonomy.ErrInvalidName
	}

	slug, err := utils.UniqueSlug(ctx, base, s.categorySlugChecker(uuid.Nil))
	if err != nil {
		return nil, err
	}

	category := &taxonomy.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	}

	for attempt := 0; ; attempt++ {
		created, err := s.categories.Create(ctx, category)
		if err == nil {
			return taxonomy.CategoryToResp(created), nil
		}
		if !errors.Is(err, taxonomy.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		category.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *taxonomyService) GetCategoryByIdentifier(ctx context.Context, identifier string) (*taxonomy.CategoryResp, error) {
	var (
		category *taxonomy.Category
		err      error
	)
	if utils.IsUUID(identifier) {
		category, err = s.categories.GetByID(ctx, uuid.MustParse(identifier))
	} else {
		category, err = s.categories.GetBySlug(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	return taxonomy.CategoryToResp(category), nil
}

func (s *taxonomyService) ListCategories(ctx context.Context, page pagination.Params) ([]taxonomy.CategoryResp, pagination.Envelope, error) {
	categories, total, err := s.categories.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Envelope{}, err
	}
	return taxonomy.CategoriesToResp(categories), pagination.NewEnvelope(page, total), nil
}

func (s *taxonomyService) UpdateCategory(ctx context.Context, id uuid.UUID, req *taxonomy.UpdateCategoryReq) (*taxonomy.CategoryResp, error) {
	existing, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	base := ""
	if req.Name != nil && *req.Name != existing.Name {
		base = utils.GenerateSlug(*req.Name)
		if base == "" {
			return nil, taxonomy.ErrInvalidName
		}
		existing.Name = *req.Name
		existing.Slug, err = utils.UniqueSlug(ctx, base, s.categorySlugChecker(id))
		if err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}

	for attempt := 0; ; attempt++ {
		updated, err := s.categories.Update(ctx, existing)
		if err == nil {
			return taxonomy.CategoryToResp(updated), nil
		}
		if base == "" || !errors.Is(err, taxonomy.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		existing.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}

func (s *taxonomyService) CreateTag(ctx context.Context, req *taxonomy.CreateTagReq) (*taxonomy.TagResp, error) {
	base := utils.GenerateSlug(req.Name)
	if base == "" {
		return nil, taxonomy.ErrInvalidName
	}

	slug, err := utils.UniqueSlug(ctx, base, s.tagSlugChecker(uuid.Nil))
	if err != nil {
		return nil, err
	}

	tag := &taxonomy.Tag{Name: req.Name, Slug: slug}

	for attempt := 0; ; attempt++ {
		created, err := s.tags.Create(ctx, tag)
		if err == nil {
			return taxonomy.TagToResp(created), nil
		}
		if !errors.Is(err, taxonomy.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		tag.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *taxonomyService) GetTagByIdentifier(ctx context.Context, identifier string) (*taxonomy.TagResp, error) {
	var (
		tag *taxonomy.Tag
		err error
	)
	if utils.IsUUID(identifier) {
		tag, err = s.tags.GetByID(ctx, uuid.MustParse(identifier))
	} else {
		tag, err = s.tags.GetBySlug(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	return taxonomy.TagToResp(tag), nil
}

func (s *taxonomyService) ListTags(ctx context.Context, page pagination.Params) ([]taxonomy.TagResp, pagination.Envelope, error) {
	tags, total, err := s.tags.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Envelope{}, err
	}
	return taxonomy.TagsToResp(tags), pagination.NewEnvelope(page, total), nil
}

func (s *taxonomyService) UpdateTag(ctx context.Context, id uuid.UUID, req *taxonomy.UpdateTagReq) (*taxonomy.TagResp, error) {
	existing, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	base := ""
	if req.Name != nil && *req.Name != existing.Name {
		base = utils.GenerateSlug(*req.Name)
		if base == "" {
			return nil, taxonomy.ErrInvalidName
		}
		existing.Name = *req.Name
		existing.Slug, err = utils.UniqueSlug(ctx, base, s.tagSlugChecker(id))
		if err != nil {
			return nil, err
		}
	}

	for attempt := 0; ; attempt++ {
		updated, err := s.tags.Update(ctx, existing)
		if err == nil {
			return taxonomy.TagToResp(updated), nil
		}
		if base == "" || !errors.Is(err, taxonomy.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		existing.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *taxonomyService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return s.tags.Delete(ctx, id)
}

func (s *taxonomyService) categorySlugChecker(excludeID uuid.UUID) utils.SlugExists {
	return func(ctx context.Context, slug string) (bool, error) {
		return s.categories.SlugExists(ctx, slug, excludeID)
	}
}

func (s *taxonomyService) tagSlugChecker(excludeID uuid.UUID) utils.SlugExists {
	return func(ctx context.Context, slug string) (bool, error) {
		return s.tags.SlugExists(ctx, slug, excludeID)
	}
}
