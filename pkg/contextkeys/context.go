package contextkeys

type contextKey string

// DBContextKey - ключ, под которым DBMiddleware кладет *gorm.DB в gin.Context
const DBContextKey = contextKey("db")

// SessionContextKey - ключ для *session.Session, разрешенной из cookie
const SessionContextKey = contextKey("session")
