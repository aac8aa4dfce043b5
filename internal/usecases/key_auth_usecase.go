package usecases

import (
	"context"
	"errors"
	"time"

	"analytics-gate.backend/internal/domain/entities"
	domainerrors "analytics-gate.backend/internal/domain/errors"
	"analytics-gate.backend/internal/domain/repositories"
)

// KeyAuthUsecase authenticates presented API keys for the data plane.
type KeyAuthUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
	now        func() time.Time
}

// NewKeyAuthUsecase creates a new key authenticator
func NewKeyAuthUsecase(apiKeyRepo repositories.ApiKeyRepository) *KeyAuthUsecase {
	return &KeyAuthUsecase{
		apiKeyRepo: apiKeyRepo,
		now:        time.Now,
	}
}

// Authenticate resolves the presented key string to a decision. A missing
// key never touches the store. Revocation is checked before expiry, so a
// revoked-and-expired key still reports revoked. An error return means the
// store failed, not that the key was rejected.
func (u *KeyAuthUsecase) Authenticate(ctx context.Context, headerKey string) (*entities.KeyDecision, error) {
	if headerKey == "" {
		return &entities.KeyDecision{Reason: entities.KeyMissing}, nil
	}

	key, err := u.apiKeyRepo.FindByKey(ctx, headerKey)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.KeyDecision{Reason: entities.KeyUnknown}, nil
		}
		return nil, err
	}

	if key.IsRevoked {
		return &entities.KeyDecision{Reason: entities.KeyRevoked, ExpiresAt: key.ExpiresAt}, nil
	}

	if key.ExpiresAt.Valid && key.ExpiresAt.Time.Before(u.now()) {
		return &entities.KeyDecision{Reason: entities.KeyExpired, ExpiresAt: key.ExpiresAt}, nil
	}

	return &entities.KeyDecision{
		Context: &entities.KeyContext{ApplicationID: key.ApplicationID},
	}, nil
}
