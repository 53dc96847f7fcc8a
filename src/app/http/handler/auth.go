package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hattournament/src/app/http/dto"
	"hattournament/src/app/http/response"
	"hattournament/src/app/middleware"
	"hattournament/src/core/usecase"
)

// AuthHandler handles account and token endpoints.
type AuthHandler struct {
	auth *usecase.AuthService
}

func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates an account.
// POST /v1/users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bind(c, &req) {
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, user)
}

// Login issues a token.
// POST /v1/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bind(c, &req) {
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.TokenResponse{Token: token.ID, ExpiresAt: token.ExpiresAt})
}

// Logout revokes the token the request was made with.
// POST /v1/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.GetToken(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
