package handler

import (
	"github.com/gin-gonic/gin"

	"hattournament/src/app/http/dto"
	"hattournament/src/app/http/response"
	"hattournament/src/core/usecase"
)

// AdminHandler exposes maintenance endpoints.
type AdminHandler struct {
	admin *usecase.AdminService
}

func NewAdminHandler(admin *usecase.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Reset wipes all data when the secret matches.
// DELETE /v1/admin/data
func (h *AdminHandler) Reset(c *gin.Context) {
	var req dto.ResetRequest
	if !bind(c, &req) {
		return
	}
	if err := h.admin.Reset(c.Request.Context(), req.Secret); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, gin.H{"status": "reset"})
}
