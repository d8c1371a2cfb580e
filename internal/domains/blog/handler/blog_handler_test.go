package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewtech-backend/internal/domains/blog"
	"viewtech-backend/internal/shared/pagination"
)

// fakeService lets each test script the behavior it needs per method.
type fakeService struct {
	createFn func(ctx context.Context, req *blog.CreatePostReq, actor uuid.UUID) (*blog.PostResp, error)
	getFn    func(ctx context.Context, identifier string) (*blog.PostResp, error)
	listFn   func(ctx context.Context, q blog.ListQuery) ([]blog.PostResp, pagination.Envelope, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *blog.UpdatePostReq, actor uuid.UUID) (*blog.PostResp, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeService) Create(ctx context.Context, req *blog.CreatePostReq, actor uuid.UUID) (*blog.PostResp, error) {
	return f.createFn(ctx, req, actor)
}

func (f *fakeService) GetByIdentifier(ctx context.Context, identifier string) (*blog.PostResp, error) {
	return f.getFn(ctx, identifier)
}

func (f *fakeService) List(ctx context.Context, q blog.ListQuery) ([]blog.PostResp, pagination.Envelope, error) {
	return f.listFn(ctx, q)
}

func (f *fakeService) Update(ctx context.Context, id uuid.UUID, req *blog.UpdatePostReq, actor uuid.UUID) (*blog.PostResp, error) {
	return f.updateFn(ctx, id, req, actor)
}

func (f *fakeService) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

func newTestRouter(svc blog.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBlogHandler(svc)

	r := gin.New()
	g := r.Group("/api/blog")
	g.GET("", h.List)
	g.GET("/:identifier", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func samplePost(slug string) *blog.PostResp {
	return &blog.PostResp{
		ID:         uuid.New(),
		Title:      "Sample",
		Slug:       slug,
		Content:    "<p>content</p>",
		Status:     blog.StatusPublished,
		Categories: []blog.TermRef{},
		Tags:       []blog.TermRef{},
	}
}

func TestListEnvelopeShape(t *testing.T) {
	svc := &fakeService{
		listFn: func(ctx context.Context, q blog.ListQuery) ([]blog.PostResp, pagination.Envelope, error) {
			return []blog.PostResp{*samplePost("one"), *samplePost("two")},
				pagination.NewEnvelope(q.Page, 5), nil
		},
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/blog?limit=2&page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items      []json.RawMessage `json:"items"`
		Pagination struct {
			Total      int `json:"total"`
			Page       int `json:"page"`
			PageSize   int `json:"pageSize"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Len(t, body.Items, 2)
	assert.Equal(t, 5, body.Pagination.Total)
	assert.Equal(t, 2, body.Pagination.Page)
	assert.Equal(t, 2, body.Pagination.PageSize)
	assert.Equal(t, 3, body.Pagination.TotalPages)
}

func TestListAnonymousForcedToPublished(t *testing.T) {
	var got blog.ListQuery
	svc := &fakeService{
		listFn: func(ctx context.Context, q blog.ListQuery) ([]blog.PostResp, pagination.Envelope, error) {
			got = q
			return []blog.PostResp{}, pagination.Envelope{}, nil
		},
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/blog?status=draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	// no auth middleware ran, so the caller is anonymous
	assert.Equal(t, string(blog.StatusPublished), got.Status)
}

func TestListRejectsBadPagination(t *testing.T) {
	svc := &fakeService{
		listFn: func(ctx context.Context, q blog.ListQuery) ([]blog.PostResp, pagination.Envelope, error) {
			t.Fatal("service must not be called")
			return nil, pagination.Envelope{}, nil
		},
	}
	r := newTestRouter(svc)

	for _, path := range []string{"/api/blog?page=0", "/api/blog?page=abc", "/api/blog?limit=-1"} {
		w := doRequest(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGetDispatchesIdentifier(t *testing.T) {
	var seen []string
	svc := &fakeService{
		getFn: func(ctx context.Context, identifier string) (*blog.PostResp, error) {
			seen = append(seen, identifier)
			return samplePost("hello"), nil
		},
	}
	r := newTestRouter(svc)

	id := uuid.New().String()
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/blog/"+id, nil).Code)
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/blog/hello-world", nil).Code)

	assert.Equal(t, []string{id, "hello-world"}, seen)
}

func TestGetNotFoundBody(t *testing.T) {
	svc := &fakeService{
		getFn: func(ctx context.Context, identifier string) (*blog.PostResp, error) {
			return nil, blog.ErrPostNotFound
		},
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/blog/missing-post", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Blog post not found"}`, w.Body.String())
}

func TestCreateReturns201(t *testing.T) {
	svc := &fakeService{
		createFn: func(ctx context.Context, req *blog.CreatePostReq, actor uuid.UUID) (*blog.PostResp, error) {
			return samplePost("new-post"), nil
		},
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/blog", map[string]interface{}{
		"title":   "New Post",
		"content": "<p>x</p>",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateValidationFailure(t *testing.T) {
	svc := &fakeService{
		createFn: func(ctx context.Context, req *blog.CreatePostReq, actor uuid.UUID) (*blog.PostResp, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/blog", map[string]interface{}{
		"content": "<p>no title</p>",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateConflict(t *testing.T) {
	svc := &fakeService{
		createFn: func(ctx context.Context, req *blog.CreatePostReq, actor uuid.UUID) (*blog.PostResp, error) {
			return nil, blog.ErrDuplicateSlug
		},
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/blog", map[string]interface{}{
		"title":   "Dup",
		"content": "<p>x</p>",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateRejectsBadID(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPut, "/api/blog/not-a-uuid", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid blog post id"}`, w.Body.String())
}

func TestDeleteConfirmation(t *testing.T) {
	svc := &fakeService{
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodDelete, "/api/blog/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Blog post deleted successfully"}`, w.Body.String())
}

func TestServerErrorBodyIsOpaque(t *testing.T) {
	svc := &fakeService{
		getFn: func(ctx context.Context, identifier string) (*blog.PostResp, error) {
			return nil, errors.New("pq: connection refused")
		},
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/blog/anything", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server error"}`, w.Body.String())
}
