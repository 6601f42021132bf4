package middleware

import (
	"context"
	"errors"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/session"
	"gigup_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// SessionResolver - часть session.Manager, нужная middleware
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

// SessionMiddleware только разрешает cookie в сессию и никогда не отклоняет запрос.
// Решение о доступе принимает access.Gate в хендлере.
func SessionMiddleware(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := resolver.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(string(contextkeys.SessionContextKey), sess)
			c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), sess.UserID))
		case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrInvalidToken):
			logger.CtxDebug(c.Request.Context(), "Session cookie rejected", "reason", err.Error())
		default:
			logger.CtxWithError(c.Request.Context(), "Session lookup failed", err)
		}
		c.Next()
	}
}
