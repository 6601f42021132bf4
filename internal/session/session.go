// Package session хранит серверные сессии в redis. Клиент держит только
// подписанный токен с идентификатором сессии.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gigup_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "gigup:session:"
	userSetPrefix = "gigup:user_sessions:"
)

var (
	ErrNoSession    = errors.New("session not found")
	ErrInvalidToken = errors.New("invalid session token")
)

// Session - разрешенная личность запроса
type Session struct {
	ID        string          `json:"-"`
	UserID    string          `json:"user_id"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type Manager struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(rdb *redis.Client, secret string, ttl time.Duration) *Manager {
	return &Manager{
		rdb:    rdb,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Establish создает сессию и возвращает токен для cookie
func (m *Manager) Establish(ctx context.Context, user *models.User) (string, *Session, error) {
	now := m.now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", nil, fmt.Errorf("marshal session: %w", err)
	}

	userKey := userSetPrefix + user.ID
	pipe := m.rdb.TxPipeline()
	pipe.Set(ctx, keyPrefix+sess.ID, payload, m.ttl)
	pipe.SAdd(ctx, userKey, sess.ID)
	pipe.Expire(ctx, userKey, m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, sess, nil
}

// Resolve проверяет подпись токена и находит сессию в redis
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid || c.SessionID == "" {
		return nil, ErrInvalidToken
	}

	raw, err := m.rdb.Get(ctx, keyPrefix+c.SessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.UserID != c.Subject {
		return nil, ErrInvalidToken
	}
	sess.ID = c.SessionID
	return &sess, nil
}

// Destroy удаляет сессию. Отсутствующая сессия не ошибка.
func (m *Manager) Destroy(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	pipe := m.rdb.TxPipeline()
	pipe.Del(ctx, keyPrefix+sess.ID)
	pipe.SRem(ctx, userSetPrefix+sess.UserID, sess.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// DestroyAllForUser завершает все сессии пользователя, например после сброса пароля
func (m *Manager) DestroyAllForUser(ctx context.Context, userID string) error {
	userKey := userSetPrefix + userID
	ids, err := m.rdb.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, keyPrefix+id)
	}
	keys = append(keys, userKey)

	if err := m.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("destroy user sessions: %w", err)
	}
	return nil
}
