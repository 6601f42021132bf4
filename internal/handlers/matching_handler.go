package handlers

import (
	"net/http"

	"gigup_backend/internal/services"
	"gigup_backend/internal/services/dto"
	"gigup_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/gigs/recommended", h.Recommended)
}

// Recommended ранжирует открытые гиги для вызывающего по его местоположению
func (h *MatchingHandler) Recommended(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	var q dto.RecommendationQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}
	if q.Lat == nil || q.Lng == nil {
		h.HandleServiceError(c, apperrors.ErrLocationRequired)
		return
	}

	resp, err := h.matchingService.Recommend(c.Request.Context(), h.GetDB(c), user.ID, *q.Lat, *q.Lng)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
