package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"viewtech-backend/internal/domains/settings"
	"viewtech-backend/internal/shared/response"
)

type SettingsHandler struct {
	service settings.Service
}

func NewSettingsHandler(svc settings.Service) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

func (h *SettingsHandler) All(c *gin.Context) {
	all, err := h.service.All(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, all)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *SettingsHandler) Upsert(c *gin.Context) {
	var req settings.UpsertSettingReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), c.Param("key"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("key")); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Setting deleted successfully")
}

func (h *SettingsHandler) respondError(c *gin.Context, err error) {
	statusCode := settings.GetHTTPStatusCode(err)

	message := err.Error()
	if errors.Is(err, settings.ErrSettingNotFound) {
		message = "Setting not found"
	}
	if statusCode == http.StatusInternalServerError {
		message = "Server error"
	}

	response.Message(c, statusCode, message)
}
