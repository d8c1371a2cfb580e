package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewtech-backend/internal/domains/blog"
	"viewtech-backend/internal/shared/pagination"
)

// fakeRepo keeps posts in memory and enforces slug uniqueness the way the
// database unique index does.
type fakeRepo struct {
	posts map[uuid.UUID]*blog.Post

	// failCreates forces the next N Create calls to report a duplicate slug,
	// simulating a race the pre-check missed.
	failCreates int

	lastFilter    *blog.Filter
	getByIDCalls  int
	getBySlugArgs []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: map[uuid.UUID]*blog.Post{}}
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	f.getByIDCalls++
	p, ok := f.posts[id]
	if !ok {
		return nil, blog.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	f.getBySlugArgs = append(f.getBySlugArgs, slug)
	for _, p := range f.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, blog.ErrPostNotFound
}

func (f *fakeRepo) List(ctx context.Context, filter *blog.Filter) ([]blog.Post, int, error) {
	f.lastFilter = filter
	out := make([]blog.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Create(ctx context.Context, post *blog.Post, categoryIDs, tagIDs []uuid.UUID) (*blog.Post, error) {
	if f.failCreates > 0 {
		f.failCreates--
		return nil, blog.ErrDuplicateSlug
	}
	for _, p := range f.posts {
		if p.Slug == post.Slug {
			return nil, blog.ErrDuplicateSlug
		}
	}
	cp := *post
	f.posts[post.ID] = &cp
	return post, nil
}

func (f *fakeRepo) Update(ctx context.Context, post *blog.Post, categoryIDs, tagIDs *[]uuid.UUID) (*blog.Post, error) {
	if _, ok := f.posts[post.ID]; !ok {
		return nil, blog.ErrPostNotFound
	}
	for id, p := range f.posts {
		if id != post.ID && p.Slug == post.Slug {
			return nil, blog.ErrDuplicateSlug
		}
	}
	cp := *post
	f.posts[post.ID] = &cp
	return post, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return blog.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeRepo) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	for id, p := range f.posts {
		if id != excludeID && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// memoryCache round-trips values through JSON like the redis layer does.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

func newService(repo *fakeRepo) blog.Service {
	return NewBlogService(repo, newMemoryCache())
}

func seedPost(f *fakeRepo, title, slug string) *blog.Post {
	now := time.Now().UTC()
	p := &blog.Post{
		ID:        uuid.New(),
		Title:     title,
		Slug:      slug,
		Content:   "<p>content</p>",
		Status:    blog.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.posts[p.ID] = p
	return p
}

func TestCreateGeneratesSlug(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), &blog.CreatePostReq{
		Title:   "Top 10 Security Tips!",
		Content: "<p>Lock your doors.</p>",
	}, uuid.Nil)

	require.NoError(t, err)
	assert.Equal(t, "top-10-security-tips", resp.Slug)
	assert.Equal(t, blog.StatusDraft, resp.Status)
	assert.Nil(t, resp.PublishedAt)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestCreateRejectsUnsluggableTitle(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	_, err := svc.Create(context.Background(), &blog.CreatePostReq{
		Title:   "!!!",
		Content: "<p>x</p>",
	}, uuid.Nil)

	assert.ErrorIs(t, err, blog.ErrInvalidTitle)
}

func TestCreateCollisionGetsSuffix(t *testing.T) {
	repo := newFakeRepo()
	seedPost(repo, "Hello World", "hello-world")
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), &blog.CreatePostReq{
		Title:   "Hello World",
		Content: "<p>x</p>",
	}, uuid.Nil)

	require.NoError(t, err)
	assert.Regexp(t, `^hello-world-[0-9a-z]{6}$`, resp.Slug)
}

func TestCreateRetriesLostRace(t *testing.T) {
	repo := newFakeRepo()
	repo.failCreates = 2
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), &blog.CreatePostReq{
		Title:   "Hello World",
		Content: "<p>x</p>",
	}, uuid.Nil)

	require.NoError(t, err)
	// two losses mean the stored slug carries a regenerated suffix
	assert.Regexp(t, `^hello-world-[0-9a-z]{6}$`, resp.Slug)
}

func TestCreateGivesUpAfterRetries(t *testing.T) {
	repo := newFakeRepo()
	repo.failCreates = 10
	svc := newService(repo)

	_, err := svc.Create(context.Background(), &blog.CreatePostReq{
		Title:   "Hello World",
		Content: "<p>x</p>",
	}, uuid.Nil)

	assert.ErrorIs(t, err, blog.ErrDuplicateSlug)
}

func TestCreatePublishedStampsDate(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), &blog.CreatePostReq{
		Title:   "Launch Post",
		Content: "<p>x</p>",
		Status:  "published",
	}, uuid.Nil)

	require.NoError(t, err)
	require.NotNil(t, resp.PublishedAt)
	assert.WithinDuration(t, time.Now().UTC(), *resp.PublishedAt, 5*time.Second)
}

func TestCreateBuildsExcerptFromContent(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), &blog.CreatePostReq{
		Title:   "Excerpt Post",
		Content: "<p>" + strings.Repeat("word ", 100) + "</p>",
	}, uuid.Nil)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Excerpt)
	assert.True(t, strings.HasSuffix(resp.Excerpt, "..."))
	assert.LessOrEqual(t, len(resp.Excerpt), excerptLength+3)
}

func TestCreateRecordsActor(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	actor := uuid.New()

	resp, err := svc.Create(context.Background(), &blog.CreatePostReq{
		Title:   "Audited Post",
		Content: "<p>x</p>",
	}, actor)

	require.NoError(t, err)
	stored := repo.posts[resp.ID]
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, actor, *stored.CreatedBy)
}

func TestGetByIdentifierDispatch(t *testing.T) {
	repo := newFakeRepo()
	post := seedPost(repo, "Hello", "hello")
	svc := newService(repo)

	byID, err := svc.GetByIdentifier(context.Background(), post.ID.String())
	require.NoError(t, err)
	assert.Equal(t, post.ID, byID.ID)
	assert.Equal(t, 1, repo.getByIDCalls)
	assert.Empty(t, repo.getBySlugArgs)

	bySlug, err := svc.GetByIdentifier(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, post.ID, bySlug.ID)
	assert.Equal(t, []string{"hello"}, repo.getBySlugArgs)
}

func TestGetBySlugCachesPublishedPosts(t *testing.T) {
	repo := newFakeRepo()
	post := seedPost(repo, "Hot Post", "hot-post")
	post.Status = blog.StatusPublished
	c := newMemoryCache()
	svc := NewBlogService(repo, c)

	first, err := svc.GetByIdentifier(context.Background(), "hot-post")
	require.NoError(t, err)

	// second read comes from the cache, not the repository
	second, err := svc.GetByIdentifier(context.Background(), "hot-post")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"hot-post"}, repo.getBySlugArgs)

	// a write drops the cached copy
	featured := true
	_, err = svc.Update(context.Background(), post.ID, &blog.UpdatePostReq{Featured: &featured}, uuid.Nil)
	require.NoError(t, err)

	third, err := svc.GetByIdentifier(context.Background(), "hot-post")
	require.NoError(t, err)
	assert.True(t, third.Featured)
	assert.Equal(t, []string{"hot-post", "hot-post"}, repo.getBySlugArgs)
}

func TestGetBySlugSkipsCacheForDrafts(t *testing.T) {
	repo := newFakeRepo()
	seedPost(repo, "Draft Post", "draft-post")
	svc := newService(repo)

	for i := 0; i < 2; i++ {
		_, err := svc.GetByIdentifier(context.Background(), "draft-post")
		require.NoError(t, err)
	}
	// drafts are never cached, every read hits the repository
	assert.Equal(t, []string{"draft-post", "draft-post"}, repo.getBySlugArgs)
}

func TestGetByIdentifierNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	_, err := svc.GetByIdentifier(context.Background(), "no-such-post")
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
}

func TestListBuildsFilter(t *testing.T) {
	repo := newFakeRepo()
	seedPost(repo, "One", "one")
	svc := newService(repo)

	_, env, err := svc.List(context.Background(), blog.ListQuery{
		Status:       "published",
		Featured:     "true",
		CategorySlug: "cctv",
		Page:         pagination.Params{Page: 2, Limit: 2},
	})
	require.NoError(t, err)

	f := repo.lastFilter
	require.NotNil(t, f)
	require.NotNil(t, f.Status)
	assert.Equal(t, blog.StatusPublished, *f.Status)
	require.NotNil(t, f.Featured)
	assert.True(t, *f.Featured)
	assert.Equal(t, "cctv", f.CategorySlug)
	assert.Equal(t, 2, f.Limit)
	assert.Equal(t, 2, f.Offset)
	assert.Equal(t, 2, env.Page)
}

func TestUpdateTitleChangeRecomputesSlug(t *testing.T) {
	repo := newFakeRepo()
	post := seedPost(repo, "Old Title", "old-title")
	svc := newService(repo)

	newTitle := "New Title"
	resp, err := svc.Update(context.Background(), post.ID, &blog.UpdatePostReq{Title: &newTitle}, uuid.Nil)

	require.NoError(t, err)
	assert.Equal(t, "new-title", resp.Slug)
}

func TestUpdateSameTitleKeepsSlug(t *testing.T) {
	repo := newFakeRepo()
	post := seedPost(repo, "Old Title", "old-title")
	svc := newService(repo)

	sameTitle := "Old Title"
	featured := true
	resp, err := svc.Update(context.Background(), post.ID, &blog.UpdatePostReq{
		Title:    &sameTitle,
		Featured: &featured,
	}, uuid.Nil)

	require.NoError(t, err)
	assert.Equal(t, "old-title", resp.Slug)
	assert.True(t, resp.Featured)
}

func TestUpdatePartialLeavesOtherFields(t *testing.T) {
	repo := newFakeRepo()
	post := seedPost(repo, "Keep Me", "keep-me")
	svc := newService(repo)

	content := "<p>new content</p>"
	resp, err := svc.Update(context.Background(), post.ID, &blog.UpdatePostReq{Content: &content}, uuid.Nil)

	require.NoError(t, err)
	assert.Equal(t, "Keep Me", resp.Title)
	assert.Equal(t, "keep-me", resp.Slug)
	assert.Equal(t, content, resp.Content)
	assert.Equal(t, blog.StatusDraft, resp.Status)
}

func TestUpdateFirstPublishStampsDate(t *testing.T) {
	repo := newFakeRepo()
	post := seedPost(repo, "Draft Post", "draft-post")
	svc := newService(repo)

	published := "published"
	resp, err := svc.Update(context.Background(), post.ID, &blog.UpdatePostReq{Status: &published}, uuid.Nil)

	require.NoError(t, err)
	assert.Equal(t, blog.StatusPublished, resp.Status)
	require.NotNil(t, resp.PublishedAt)

	// republishing keeps the original date
	draft := "draft"
	_, err = svc.Update(context.Background(), post.ID, &blog.UpdatePostReq{Status: &draft}, uuid.Nil)
	require.NoError(t, err)

	again, err := svc.Update(context.Background(), post.ID, &blog.UpdatePostReq{Status: &published}, uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, again.PublishedAt.Equal(*resp.PublishedAt))
}

func TestUpdateSlugConflictKeepsRetrying(t *testing.T) {
	repo := newFakeRepo()
	seedPost(repo, "Taken", "taken")
	post := seedPost(repo, "Mine", "mine")
	svc := newService(repo)

	// pre-check sees the collision and suffixes; the update still lands
	title := "Taken"
	resp, err := svc.Update(context.Background(), post.ID, &blog.UpdatePostReq{Title: &title}, uuid.Nil)

	require.NoError(t, err)
	assert.Regexp(t, `^taken-[0-9a-z]{6}$`, resp.Slug)
}

func TestUpdateNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	title := "Anything"
	_, err := svc.Update(context.Background(), uuid.New(), &blog.UpdatePostReq{Title: &title}, uuid.Nil)
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	post := seedPost(repo, "Gone", "gone")
	svc := newService(repo)

	require.NoError(t, svc.Delete(context.Background(), post.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), post.ID), blog.ErrPostNotFound)
}
