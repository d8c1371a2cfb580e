package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viewtech-backend/internal/domains/media"
	"viewtech-backend/internal/shared/middleware"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/response"
)

type MediaHandler struct {
	service media.Service
}

func NewMediaHandler(svc media.Service) *MediaHandler {
	return &MediaHandler{service: svc}
}

// Upload accepts a multipart form with a single "file" field.
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	resp, err := h.service.Upload(c.Request.Context(), fileHeader.Filename, contentType, data, middleware.UserIDFromContext(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, resp)
}

func (h *MediaHandler) List(c *gin.Context) {
	page, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	q := media.ListQuery{
		MimePrefix: c.Query("type"),
		Page:       page,
	}

	items, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.List(c, items, meta)
}

func (h *MediaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid media id")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid media id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Media deleted successfully")
}

func (h *MediaHandler) respondError(c *gin.Context, err error) {
	statusCode := media.GetHTTPStatusCode(err)

	message := err.Error()
	if errors.Is(err, media.ErrMediaNotFound) {
		message = "Media not found"
	}
	if statusCode == http.StatusInternalServerError {
		message = "Server error"
	}

	response.Message(c, statusCode, message)
}
