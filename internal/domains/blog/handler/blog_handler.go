package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viewtech-backend/internal/domains/blog"
	"viewtech-backend/internal/shared/middleware"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/response"
)

type BlogHandler struct {
	service blog.Service
}

func NewBlogHandler(svc blog.Service) *BlogHandler {
	return &BlogHandler{service: svc}
}

func (h *BlogHandler) List(c *gin.Context) {
	page, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	q := blog.ListQuery{
		Status:       c.Query("status"),
		Featured:     c.Query("featured"),
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Page:         page,
	}

	// anonymous visitors only ever see published posts
	if !middleware.IsAuthenticated(c) {
		q.Status = string(blog.StatusPublished)
	}

	items, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.List(c, items, meta)
}

func (h *BlogHandler) Get(c *gin.Context) {
	identifier := c.Param("identifier")

	resp, err := h.service.GetByIdentifier(c.Request.Context(), identifier)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req blog.CreatePostReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req, middleware.UserIDFromContext(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, resp)
}

func (h *BlogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog post id")
		return
	}

	var req blog.UpdatePostReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req, middleware.UserIDFromContext(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog post id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Blog post deleted successfully")
}

func (h *BlogHandler) respondError(c *gin.Context, err error) {
	statusCode := blog.GetHTTPStatusCode(err)

	message := err.Error()
	if errors.Is(err, blog.ErrPostNotFound) {
		message = "Blog post not found"
	}
	if statusCode == http.StatusInternalServerError {
		message = "Server error"
	}

	response.Message(c, statusCode, message)
}
