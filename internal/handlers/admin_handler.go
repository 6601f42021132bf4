package handlers

import (
	"net/http"

	"gigup_backend/internal/services"
	"gigup_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/approve", h.SetApproval)
		admin.GET("/stats", h.GetStats)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	if _, ok := h.RequireAdmin(c); !ok {
		return
	}

	resp, err := h.adminService.ListUsers(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetApproval одобряет или отзывает аккаунт. Без тела запроса одобряет
func (h *AdminHandler) SetApproval(c *gin.Context) {
	admin, ok := h.RequireAdmin(c)
	if !ok {
		return
	}

	var req dto.ApproveUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	approved := req.Approved == nil || *req.Approved

	resp, err := h.adminService.SetApproval(c.Request.Context(), h.GetDB(c), admin.ID, c.Param("id"), approved)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	if _, ok := h.RequireAdmin(c); !ok {
		return
	}

	stats, err := h.adminService.GetStats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
