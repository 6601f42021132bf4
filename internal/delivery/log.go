package delivery

import (
	"context"
	"strings"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"
)

// LogDeliverer пишет факт доставки в лог, сам код маскируется
type LogDeliverer struct{}

func NewLogDeliverer() *LogDeliverer {
	return &LogDeliverer{}
}

func (d *LogDeliverer) Deliver(ctx context.Context, user *models.User, code string, t models.VerificationType) error {
	logger.CtxInfo(ctx, "Verification code issued",
		"user_id", user.ID,
		"type", string(t),
		"code", Mask(code),
	)
	return nil
}

// Mask оставляет два первых символа
func Mask(code string) string {
	if len(code) <= 2 {
		return strings.Repeat("*", len(code))
	}
	return code[:2] + strings.Repeat("*", len(code)-2)
}
