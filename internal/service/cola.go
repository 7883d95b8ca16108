package service

import (
	"context"

	"github.com/google/uuid"
)

// ColaAlertas enqueues background stock alerts. The worker package provides
// the Redis-backed implementation; services only see this interface so unit
// tests can drop it entirely.
type ColaAlertas interface {
	EncolarAlertaStock(ctx context.Context, productoID uuid.UUID) error
}
