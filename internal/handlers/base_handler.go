package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"gigup_backend/internal/access"
	"gigup_backend/internal/config"
	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"
	"gigup_backend/internal/session"
	"gigup_backend/internal/validator"
	"gigup_backend/pkg/apperrors"
	"gigup_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
	gate      *access.Gate
	cookie    CookieConfig
}

// CookieConfig - параметры cookie сессии
type CookieConfig struct {
	Name   string
	MaxAge int
	Secure bool
	Domain string
}

// CookieConfigFrom собирает параметры cookie из конфигурации сессий
func CookieConfigFrom(cfg *config.Config) CookieConfig {
	return CookieConfig{
		Name:   cfg.Session.CookieName,
		MaxAge: int(cfg.Session.TTL.Seconds()),
		Secure: cfg.Session.Secure,
		Domain: cfg.Session.Domain,
	}
}

func NewBaseHandler(v *validator.Validator, gate *access.Gate, cookie CookieConfig) *BaseHandler {
	return &BaseHandler{
		validator: v,
		gate:      gate,
		cookie:    cookie,
	}
}

// ============================================================================
// 2. Извлечение DB и сессии
// ============================================================================

// GetDB извлекает *gorm.DB из gin.Context.
// Вызывается в каждом хендлере, который обращается к сервисам
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// GetSession возвращает сессию, разрешенную SessionMiddleware, или nil
func (h *BaseHandler) GetSession(c *gin.Context) *session.Session {
	val, ok := c.Get(string(contextkeys.SessionContextKey))
	if !ok {
		return nil
	}
	sess, _ := val.(*session.Session)
	return sess
}

// ============================================================================
// 3. Проверка доступа
// ============================================================================

// RequireApproved пишет ошибку в ответ и возвращает false, если вызывающий
// не вошел или не одобрен
func (h *BaseHandler) RequireApproved(c *gin.Context) (*models.User, bool) {
	user, err := h.gate.RequireApproved(c.Request.Context(), h.GetDB(c), h.GetSession(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	return user, true
}

func (h *BaseHandler) RequireAdmin(c *gin.Context) (*models.User, bool) {
	user, err := h.gate.RequireAdmin(c.Request.Context(), h.GetDB(c), h.GetSession(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	return user, true
}

// ============================================================================
// 4. Cookie сессии
// ============================================================================

func (h *BaseHandler) SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *BaseHandler) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}

// ============================================================================
// 5. Методы привязки и валидации
// ============================================================================

// BindAndValidate_JSON привязывает тело запроса. binding.Validator указывает
// на тот же валидатор, поэтому ошибки полей приходят уже из ShouldBind.
// Пустое тело не ошибка: необязательные поля остаются нулевыми, а обязательные
// отклонит валидатор
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return h.bindAndValidate(c, obj, err, "Invalid request body: ")
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	return h.bindAndValidate(c, obj, c.ShouldBindQuery(obj), "Invalid query parameters: ")
}

func (h *BaseHandler) bindAndValidate(c *gin.Context, obj interface{}, bindErr error, prefix string) bool {
	ctx := c.Request.Context()

	err := bindErr
	if err == nil {
		err = h.validator.Validate(obj)
	}
	if err == nil {
		return true
	}

	if vErr, ok := err.(*validator.ValidationError); ok {
		logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		return false
	}

	logger.CtxWithError(ctx, "Failed to bind request", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.NewBadRequestError(prefix+err.Error()))
	return false
}

// ============================================================================
// 6. Обработчик ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.CtxWithError(ctx, "Service failure", err, "path", c.Request.URL.Path)
		} else {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"details", appErr.Details,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
		return
	}

	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}
