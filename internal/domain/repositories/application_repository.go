package repositories

import (
	"context"

	"github.com/google/uuid"

	"analytics-gate.backend/internal/domain/entities"
)

// ApplicationRepository defines application data operations. Upsert is keyed
// by user id, which forces one application per user; re-registering refreshes
// name and domain in place.
type ApplicationRepository interface {
	Upsert(ctx context.Context, app *entities.Application) (*entities.Application, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Application, error)
}
