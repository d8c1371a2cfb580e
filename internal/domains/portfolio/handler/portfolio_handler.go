package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viewtech-backend/internal/domains/portfolio"
	"viewtech-backend/internal/shared/middleware"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/response"
)

type PortfolioHandler struct {
	service portfolio.Service
}

func NewPortfolioHandler(svc portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{service: svc}
}

func (h *PortfolioHandler) List(c *gin.Context) {
	page, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	q := portfolio.ListQuery{
		Status:       c.Query("status"),
		Featured:     c.Query("featured"),
		CategorySlug: c.Query("category"),
		Page:         page,
	}

	// anonymous visitors only ever see published projects
	if !middleware.IsAuthenticated(c) {
		q.Status = string(portfolio.StatusPublished)
	}

	items, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.List(c, items, meta)
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	resp, err := h.service.GetByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	var req portfolio.CreateProjectReq
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

func (h *PortfolioHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid portfolio project id")
		return
	}

	var req portfolio.UpdateProjectReq
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

func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid portfolio project id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Portfolio project deleted successfully")
}

func (h *PortfolioHandler) respondError(c *gin.Context, err error) {
	statusCode := portfolio.GetHTTPStatusCode(err)

	message := err.Error()
	if errors.Is(err, portfolio.ErrProjectNotFound) {
		message = "Portfolio project not found"
	}
	if statusCode == http.StatusInternalServerError {
		message = "Server error"
	}

	response.Message(c, statusCode, message)
}
