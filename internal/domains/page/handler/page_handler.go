package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viewtech-backend/internal/domains/page"
	"viewtech-backend/internal/shared/middleware"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/response"
)

type PageHandler struct {
	service page.Service
}

func NewPageHandler(svc page.Service) *PageHandler {
	return &PageHandler{service: svc}
}

func (h *PageHandler) List(c *gin.Context) {
	pg, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	q := page.ListQuery{
		Status: c.Query("status"),
		Page:   pg,
	}

	if !middleware.IsAuthenticated(c) {
		q.Status = string(page.StatusPublished)
	}

	items, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.List(c, items, meta)
}

func (h *PageHandler) Get(c *gin.Context) {
	resp, err := h.service.GetByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *PageHandler) Create(c *gin.Context) {
	var req page.CreatePageReq
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

func (h *PageHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid page id")
		return
	}

	var req page.UpdatePageReq
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

func (h *PageHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid page id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Page deleted successfully")
}

func (h *PageHandler) respondError(c *gin.Context, err error) {
	statusCode := page.GetHTTPStatusCode(err)

	message := err.Error()
	if errors.Is(err, page.ErrPageNotFound) {
		message = "Page not found"
	}
	if statusCode == http.StatusInternalServerError {
		message = "Server error"
	}

	response.Message(c, statusCode, message)
}
