package handlers

import (
	"net/http"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/services"
	"gigup_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует маршруты входа и восстановления доступа.
// limit навешивается на эндпоинты, которые перебирают пароли или шлют письма
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("/signup", limit, h.Signup)
	rg.POST("/login", limit, h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/session", h.CheckSession)

	password := rg.Group("/password/reset")
	{
		password.POST("/request", limit, h.RequestPasswordReset)
		password.POST("", limit, h.ResetPassword)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	token, resp, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.SetSessionCookie(c, token)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), h.GetSession(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.ClearSessionCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logout successful"})
}

func (h *AuthHandler) CheckSession(c *gin.Context) {
	sess := h.GetSession(c)

	resp, err := h.authService.CheckSession(c.Request.Context(), h.GetDB(c), sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if sess != nil && !resp.Authenticated {
		h.ClearSessionCookie(c)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RequestPasswordReset(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Password reset completed")
	h.ClearSessionCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successfully"})
}
