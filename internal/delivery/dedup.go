package delivery

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const dedupPrefix = "gigup:delivery:"

// DedupDeliverer не отправляет один и тот же код дважды в пределах ttl
type DedupDeliverer struct {
	next Deliverer
	rdb  *redis.Client
	ttl  time.Duration
}

func NewDedupDeliverer(next Deliverer, rdb *redis.Client, ttl time.Duration) *DedupDeliverer {
	return &DedupDeliverer{next: next, rdb: rdb, ttl: ttl}
}

func (d *DedupDeliverer) Unwrap() Deliverer {
	return d.next
}

func (d *DedupDeliverer) Deliver(ctx context.Context, user *models.User, code string, t models.VerificationType) error {
	sum := sha256.Sum256([]byte(code))
	key := fmt.Sprintf("%s%s:%s:%s", dedupPrefix, t, user.ID, hex.EncodeToString(sum[:8]))

	fresh, err := d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		// redis недоступен - лучше отправить дважды, чем не отправить
		logger.CtxWithError(ctx, "Delivery dedup check failed", err, "type", string(t))
		return d.next.Deliver(ctx, user, code, t)
	}
	if !fresh {
		logger.CtxDebug(ctx, "Duplicate delivery suppressed", "user_id", user.ID, "type", string(t))
		return nil
	}

	if err := d.next.Deliver(ctx, user, code, t); err != nil {
		// снимаем отметку, чтобы повтор мог пройти
		d.rdb.Del(ctx, key)
		return err
	}
	return nil
}
