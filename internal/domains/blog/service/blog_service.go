package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"viewtech-backend/internal/domains/blog"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/utils"
	"viewtech-backend/pkg/cache"
	"viewtech-backend/pkg/logger"
)

const (
	excerptLength = 200
	// Retries after the database reports a slug collision that slipped past
	// the pre-check (concurrent create with the same title).
	maxWriteRetries = 3

	cacheKeyPrefix = "blog:slug:"
	cacheTTL       = 10 * time.Minute
)

type blogService struct {
	repo  blog.Repository
	cache cache.Cache
}

func NewBlogService(repo blog.Repository, c cache.Cache) blog.Service {
	return &blogService{repo: repo, cache: c}
}

func (s *blogService) Create(ctx context.Context, req *blog.CreatePostReq, actor uuid.UUID) (*blog.PostResp, error) {
	base := utils.GenerateSlug(req.Title)
	if base == "" {
		return nil, blog.ErrInvalidTitle
	}

	slug, err := utils.UniqueSlug(ctx, base, s.slugChecker(uuid.Nil))
	if err != nil {
		return nil, err
	}

	status := blog.StatusDraft
	if req.Status != "" {
		status = blog.Status(req.Status)
		if !status.Valid() {
			return nil, blog.ErrInvalidStatus
		}
	}

	now := time.Now().UTC()

	publishedAt := req.PublishedAt
	if status == blog.StatusPublished && publishedAt == nil {
		publishedAt = &now
	}

	content := utils.SanitizeHTML(req.Content)
	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = utils.MakeExcerpt(content, excerptLength)
	}

	post := &blog.Post{
		ID:          uuid.New(),
		Title:       req.Title,
		Slug:        slug,
		Content:     content,
		Excerpt:     excerpt,
		Status:      status,
		Featured:    req.Featured,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.CoverImageURL != "" {
		post.CoverImageURL = &req.CoverImageURL
	}
	if actor != uuid.Nil {
		post.CreatedBy = &actor
		post.UpdatedBy = &actor
	}

	created, err := s.createWithRetry(ctx, post, base, req.CategoryIDs, req.TagIDs)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return blog.PostToResp(created), nil
}

// createWithRetry treats the unique constraint as the authoritative
// collision signal: when the insert loses a race despite the pre-check, it
// regenerates the suffix and tries again.
func (s *blogService) createWithRetry(ctx context.Context, post *blog.Post, base string, categoryIDs, tagIDs []uuid.UUID) (*blog.Post, error) {
	for attempt := 0; ; attempt++ {
		created, err := s.repo.Create(ctx, post, categoryIDs, tagIDs)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, blog.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		post.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *blogService) GetByIdentifier(ctx context.Context, identifier string) (*blog.PostResp, error) {
	if utils.IsUUID(identifier) {
		post, err := s.repo.GetByID(ctx, uuid.MustParse(identifier))
		if err != nil {
			return nil, err
		}
		return blog.PostToResp(post), nil
	}

	// slug lookups serve the public site, so published posts go through the
	// cache
	var cached blog.PostResp
	found, err := s.cache.Get(ctx, cacheKeyPrefix+identifier, &cached)
	if err != nil {
		logger.Error("blog cache read failed", err)
	}
	if found {
		return &cached, nil
	}

	post, err := s.repo.GetBySlug(ctx, identifier)
	if err != nil {
		return nil, err
	}

	resp := blog.PostToResp(post)
	if post.Status == blog.StatusPublished {
		if err := s.cache.Set(ctx, cacheKeyPrefix+identifier, resp, cacheTTL); err != nil {
			logger.Error("blog cache write failed", err)
		}
	}

	return resp, nil
}

func (s *blogService) List(ctx context.Context, q blog.ListQuery) ([]blog.PostResp, pagination.Envelope, error) {
	filter := &blog.Filter{
		CategorySlug: q.CategorySlug,
		TagSlug:      q.TagSlug,
		Limit:        q.Page.Limit,
		Offset:       q.Page.Offset(),
	}

	if q.Status != "" {
		status := blog.Status(q.Status)
		filter.Status = &status
	}
	if q.Featured != "" {
		featured := q.Featured == "true"
		filter.Featured = &featured
	}

	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Envelope{}, err
	}

	return blog.PostsToResp(posts), pagination.NewEnvelope(q.Page, total), nil
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, req *blog.UpdatePostReq, actor uuid.UUID) (*blog.PostResp, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	base := ""
	if req.Title != nil && *req.Title != existing.Title {
		base = utils.GenerateSlug(*req.Title)
		if base == "" {
			return nil, blog.ErrInvalidTitle
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
		if req.Excerpt == nil && existing.Excerpt == "" {
			existing.Excerpt = utils.MakeExcerpt(existing.Content, excerptLength)
		}
	}
	if req.Excerpt != nil {
		existing.Excerpt = *req.Excerpt
	}
	if req.CoverImageURL != nil {
		existing.CoverImageURL = req.CoverImageURL
	}
	if req.Featured != nil {
		existing.Featured = *req.Featured
	}
	if req.Status != nil {
		status := blog.Status(*req.Status)
		if !status.Valid() {
			return nil, blog.ErrInvalidStatus
		}
		// first transition to published stamps the publication date
		if status == blog.StatusPublished && existing.PublishedAt == nil && req.PublishedAt == nil {
			now := time.Now().UTC()
			existing.PublishedAt = &now
		}
		existing.Status = status
	}
	if req.PublishedAt != nil {
		existing.PublishedAt = req.PublishedAt
	}

	existing.UpdatedAt = time.Now().UTC()
	if actor != uuid.Nil {
		existing.UpdatedBy = &actor
	}

	updated, err := s.updateWithRetry(ctx, existing, base, req.CategoryIDs, req.TagIDs)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return blog.PostToResp(updated), nil
}

func (s *blogService) updateWithRetry(ctx context.Context, post *blog.Post, base string, categoryIDs, tagIDs *[]uuid.UUID) (*blog.Post, error) {
	for attempt := 0; ; attempt++ {
		updated, err := s.repo.Update(ctx, post, categoryIDs, tagIDs)
		if err == nil {
			return updated, nil
		}
		// base is empty when the slug was not recomputed; a duplicate error
		// then is a genuine conflict, not a race we can retry out of.
		if base == "" || !errors.Is(err, blog.ErrDuplicateSlug) || attempt >= maxWriteRetries {
			return nil, err
		}
		post.Slug = base + "-" + utils.RandomSuffix()
	}
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// invalidateCache drops every cached post after a write. Slugs can change, so
// per-key deletion is not enough.
func (s *blogService) invalidateCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, cacheKeyPrefix+"*"); err != nil {
		logger.Error("blog cache invalidation failed", err)
	}
}

func (s *blogService) slugChecker(excludeID uuid.UUID) utils.SlugExists {
	return func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugExists(ctx, slug, excludeID)
	}
}
