package handlers

import (
	"net/http"

	"gigup_backend/internal/services"
	"gigup_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/gigs/:id/applications", h.Apply)
	rg.GET("/gigs/:id/applications", h.ListForGig)
	rg.GET("/user/applications", h.ListMine)

	applications := rg.Group("/applications")
	{
		applications.POST("/:id/accept", h.Accept)
		applications.POST("/:id/reject", h.Reject)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), user.ID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ApplicationHandler) ListForGig(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.ListForGig(c.Request.Context(), h.GetDB(c), user.ID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.ListForSeeker(c.Request.Context(), h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Accept(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	if err := h.applicationService.Accept(c.Request.Context(), h.GetDB(c), user.ID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Application accepted"})
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	if err := h.applicationService.Reject(c.Request.Context(), h.GetDB(c), user.ID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Application rejected"})
}
