package delivery

import (
	"context"
	"sync"

	"gigup_backend/internal/models"
)

type echoKey struct {
	userID string
	t      models.VerificationType
}

// EchoDeliverer ничего не отправляет и запоминает последний код. Не для production.
type EchoDeliverer struct {
	mu    sync.RWMutex
	codes map[echoKey]string
}

func NewEchoDeliverer() *EchoDeliverer {
	return &EchoDeliverer{codes: make(map[echoKey]string)}
}

func (d *EchoDeliverer) Deliver(_ context.Context, user *models.User, code string, t models.VerificationType) error {
	d.mu.Lock()
	d.codes[echoKey{userID: user.ID, t: t}] = code
	d.mu.Unlock()
	return nil
}

func (d *EchoDeliverer) LastCode(userID string, t models.VerificationType) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	code, ok := d.codes[echoKey{userID: userID, t: t}]
	return code, ok
}
