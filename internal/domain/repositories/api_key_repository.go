package repositories

import (
	"context"

	"github.com/google/uuid"

	"analytics-gate.backend/internal/domain/entities"
)

// ApiKeyRepository defines API key data operations. The key slot is unique
// per application: Upsert replaces api_key, is_revoked and expires_at on
// conflict, leaving created_at from the original insert.
type ApiKeyRepository interface {
	Upsert(ctx context.Context, key *entities.ApiKey) (*entities.ApiKey, error)
	FindByKey(ctx context.Context, apiKey string) (*entities.ApiKey, error)
	ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKeySummary, error)
	RevokeByApplicationID(ctx context.Context, applicationID uuid.UUID) (int64, error)
}
