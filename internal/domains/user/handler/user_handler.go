package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viewtech-backend/internal/domains/user"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/internal/shared/response"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{service: svc}
}

func (h *UserHandler) List(c *gin.Context) {
	page, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, meta, err := h.service.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.List(c, items, meta)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	resp, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Created(c, resp)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	var req user.UpdateUserReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		respondAuthError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "User deleted successfully")
}
