package handlers

import (
	"net/http"

	"gigup_backend/internal/models"
	"gigup_backend/internal/services"
	"gigup_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	authService services.AuthService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		authService: authService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.GetMe)

	profile := rg.Group("/profile")
	{
		profile.PUT("", h.UpdateProfile)
		profile.PUT("/password", h.ChangePassword)
	}

	verify := rg.Group("/verify")
	{
		verify.POST("/email/send", h.SendVerification(models.VerificationTypeEmail))
		verify.POST("/phone/send", h.SendVerification(models.VerificationTypePhone))
		verify.POST("/email", h.Verify(models.VerificationTypeEmail))
		verify.POST("/phone", h.Verify(models.VerificationTypePhone))
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateProfile(c.Request.Context(), h.GetDB(c), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, ok := h.RequireApproved(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), h.GetDB(c), user.ID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password changed successfully"})
}

func (h *UserHandler) SendVerification(t models.VerificationType) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.RequireApproved(c)
		if !ok {
			return
		}

		resp, err := h.userService.SendVerification(c.Request.Context(), h.GetDB(c), user, t)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func (h *UserHandler) Verify(t models.VerificationType) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.RequireApproved(c)
		if !ok {
			return
		}

		var req dto.VerifyCodeRequest
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}

		resp, err := h.userService.Verify(c.Request.Context(), h.GetDB(c), user, t, req.Code)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
