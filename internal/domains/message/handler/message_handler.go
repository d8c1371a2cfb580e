package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viewtech-backend/internal/domains/message"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/response"
)

type MessageHandler struct {
	service message.Service
}

func NewMessageHandler(svc message.Service) *MessageHandler {
	return &MessageHandler{service: svc}
}

// Create is the public contact-form endpoint.
func (h *MessageHandler) Create(c *gin.Context) {
	var req message.CreateMessageReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, resp)
}

func (h *MessageHandler) List(c *gin.Context) {
	page, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	q := message.ListQuery{
		Status: c.Query("status"),
		Page:   page,
	}

	items, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.List(c, items, meta)
}

func (h *MessageHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid message id")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *MessageHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid message id")
		return
	}

	var req message.UpdateStatusReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *MessageHandler) Respond(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid message id")
		return
	}

	var req message.RespondReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Respond(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid message id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Message deleted successfully")
}

func (h *MessageHandler) respondError(c *gin.Context, err error) {
	statusCode := message.GetHTTPStatusCode(err)

	msg := err.Error()
	if errors.Is(err, message.ErrMessageNotFound) {
		msg = "Message not found"
	}
	if statusCode == http.StatusInternalServerError {
		msg = "Server error"
	}

	response.Message(c, statusCode, msg)
}
