package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"viewtech-backend/internal/domains/user"
	"viewtech-backend/internal/shared/middleware"
	"viewtech-backend/internal/shared/response"
)

type AuthHandler struct {
	service user.Service
}

func NewAuthHandler(svc user.Service) *AuthHandler {
	return &AuthHandler{service: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, resp)
}

// Status reports the account behind the presented access token. The route is
// wrapped in AuthMiddleware, so reaching here means the token checked out.
func (h *AuthHandler) Status(c *gin.Context) {
	resp, err := h.service.Current(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, resp)
}

// Logout is stateless on the server; tokens simply expire. The endpoint
// exists so clients have a uniform call to clear their session against.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Message(c, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req user.RefreshReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, resp)
}

func respondAuthError(c *gin.Context, err error) {
	statusCode := user.GetHTTPStatusCode(err)

	message := err.Error()
	if errors.Is(err, user.ErrUserNotFound) {
		message = "User not found"
	}
	if statusCode == http.StatusInternalServerError {
		message = "Server error"
	}

	response.Message(c, statusCode, message)
}
