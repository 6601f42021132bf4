// Package delivery доставляет коды подтверждения пользователям вне запроса.
package delivery

import (
	"context"
	"fmt"

	"gigup_backend/internal/config"
	"gigup_backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Deliverer отправляет код пользователю. Ошибка означает, что код не доставлен.
type Deliverer interface {
	Deliver(ctx context.Context, user *models.User, code string, t models.VerificationType) error
}

// Echoer - только для разработки и тестов: последний выданный код можно вернуть в ответе
type Echoer interface {
	LastCode(userID string, t models.VerificationType) (string, bool)
}

type unwrapper interface {
	Unwrap() Deliverer
}

// AsEchoer ищет Echoer по цепочке оберток
func AsEchoer(d Deliverer) (Echoer, bool) {
	for d != nil {
		if e, ok := d.(Echoer); ok {
			return e, true
		}
		u, ok := d.(unwrapper)
		if !ok {
			return nil, false
		}
		d = u.Unwrap()
	}
	return nil, false
}

// New собирает доставку по режиму из конфигурации. rdb может быть nil, тогда без дедупликации.
func New(cfg *config.Config, rdb *redis.Client) (Deliverer, error) {
	var d Deliverer

	switch cfg.Delivery.Mode {
	case "log", "":
		d = NewLogDeliverer()
	case "echo":
		d = NewEchoDeliverer()
	case "smtp":
		smtp := NewSMTPDeliverer(SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			ResetURL:  cfg.Email.ResetURL,
		})
		// SMS-шлюза нет, коды телефона только в лог
		d = NewRouter(NewLogDeliverer()).
			Route(models.VerificationTypeEmail, smtp).
			Route(models.VerificationTypePasswordReset, smtp)
	default:
		return nil, fmt.Errorf("unknown delivery mode %q", cfg.Delivery.Mode)
	}

	if rdb != nil && cfg.Delivery.DedupTTL > 0 {
		d = NewDedupDeliverer(d, rdb, cfg.Delivery.DedupTTL)
	}
	return d, nil
}
