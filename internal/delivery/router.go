package delivery

import (
	"context"

	"gigup_backend/internal/models"
)

// Router выбирает доставку по типу кода
type Router struct {
	routes   map[models.VerificationType]Deliverer
	fallback Deliverer
}

func NewRouter(fallback Deliverer) *Router {
	return &Router{
		routes:   make(map[models.VerificationType]Deliverer),
		fallback: fallback,
	}
}

func (r *Router) Route(t models.VerificationType, d Deliverer) *Router {
	r.routes[t] = d
	return r
}

func (r *Router) Deliver(ctx context.Context, user *models.User, code string, t models.VerificationType) error {
	if d, ok := r.routes[t]; ok {
		return d.Deliver(ctx, user, code, t)
	}
	return r.fallback.Deliver(ctx, user, code, t)
}
