package handlers

import (
	"net/http"

	"gigup_backend/internal/services"
	"gigup_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GigHandler struct {
	*BaseHandler
	gigService services.GigService
}

func NewGigHandler(base *BaseHandler, gigService services.GigService) *GigHandler {
	return &GigHandler{
		BaseHandler: base,
		gigService:  gigService,
	}
}

func (h *GigHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gigs := rg.Group("/gigs")
	{
		// Публичные
		gigs.GET("", h.ListGigs)
		gigs.GET("/:id", h.GetGig)

		// Только одобренные пользователи
		gigs.POST("", h.CreateGig)
		gigs.POST("/:id/complete", h.CompleteGig)
		gigs.POST("/:id/cancel", h.CancelGig)
	}

	rg.GET("/user/gigs", h.ListMyGigs)
}

func (h *GigHandler) CreateGig(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	var req dto.CreateGigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.gigService.CreateGig(c.Request.Context(), h.GetDB(c), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *GigHandler) ListGigs(c *gin.Context) {
	var q dto.GigListQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	resp, err := h.gigService.ListGigs(c.Request.Context(), h.GetDB(c), &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GigHandler) GetGig(c *gin.Context) {
	resp, err := h.gigService.GetGig(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GigHandler) ListMyGigs(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	resp, err := h.gigService.ListProviderGigs(c.Request.Context(), h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GigHandler) CompleteGig(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	if err := h.gigService.CompleteGig(c.Request.Context(), h.GetDB(c), user.ID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Gig completed successfully"})
}

func (h *GigHandler) CancelGig(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	if err := h.gigService.CancelGig(c.Request.Context(), h.GetDB(c), user.ID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Gig cancelled successfully"})
}
