package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viewtech-backend/internal/domains/taxonomy"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/response"
)

type TaxonomyHandler struct {
	service taxonomy.Service
}

func NewTaxonomyHandler(svc taxonomy.Service) *TaxonomyHandler {
	return &TaxonomyHandler{service: svc}
}

func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	page, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, meta, err := h.service.ListCategories(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.List(c, items, meta)
}

func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	resp, err := h.service.GetCategoryByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req taxonomy.CreateCategoryReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, resp)
}

func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category id")
		return
	}

	var req taxonomy.UpdateCategoryReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category id")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Category deleted successfully")
}

func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	page, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, meta, err := h.service.ListTags(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.List(c, items, meta)
}

func (h *TaxonomyHandler) GetTag(c *gin.Context) {
	resp, err := h.service.GetTagByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req taxonomy.CreateTagReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CreateTag(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, resp)
}

func (h *TaxonomyHandler) UpdateTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag id")
		return
	}

	var req taxonomy.UpdateTagReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateTag(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag id")
		return
	}

	if err := h.service.DeleteTag(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Tag deleted successfully")
}

func (h *TaxonomyHandler) respondError(c *gin.Context, err error) {
	statusCode := taxonomy.GetHTTPStatusCode(err)

	message := err.Error()
	if errors.Is(err, taxonomy.ErrCategoryNotFound) {
		message = "Category not found"
	}
	if errors.Is(err, taxonomy.ErrTagNotFound) {
		message = "Tag not found"
	}
	if statusCode == http.StatusInternalServerError {
		message = "Server error"
	}

	response.Message(c, statusCode, message)
}
