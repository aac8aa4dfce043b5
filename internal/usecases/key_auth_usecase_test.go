package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"analytics-gate.backend/internal/domain/entities"
	domainerrors "analytics-gate.backend/internal/domain/errors"
)

func TestKeyAuthAuthenticate_MissingKeySkipsStore(t *testing.T) {
	called := false
	uc := NewKeyAuthUsecase(&stubApiKeyRepo{
		findByKeyFn: func(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
			called = true
			return nil, domainerrors.ErrNotFound
		},
	})

	decision, err := uc.Authenticate(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, decision.Accepted())
	assert.Equal(t, entities.KeyMissing, decision.Reason)
	assert.False(t, called, "store should not be queried for an empty key")
}

func TestKeyAuthAuthenticate_UnknownKey(t *testing.T) {
	uc := NewKeyAuthUsecase(&stubApiKeyRepo{
		findByKeyFn: func(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
			return nil, domainerrors.ErrNotFound
		},
	})

	decision, err := uc.Authenticate(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.False(t, decision.Accepted())
	assert.Equal(t, entities.KeyUnknown, decision.Reason)
}

func TestKeyAuthAuthenticate_RevokedBeforeExpired(t *testing.T) {
	expired := null.TimeFrom(time.Now().Add(-time.Hour))
	uc := NewKeyAuthUsecase(&stubApiKeyRepo{
		findByKeyFn: func(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
			return &entities.ApiKey{
				ApplicationID: uuid.New(),
				ApiKey:        apiKey,
				IsRevoked:     true,
				ExpiresAt:     expired,
			}, nil
		},
	})

	decision, err := uc.Authenticate(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, entities.KeyRevoked, decision.Reason)
	assert.Equal(t, expired, decision.ExpiresAt)
}

func TestKeyAuthAuthenticate_ExpiredKey(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := null.TimeFrom(now.Add(-time.Minute))
	uc := NewKeyAuthUsecase(&stubApiKeyRepo{
		findByKeyFn: func(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
			return &entities.ApiKey{
				ApplicationID: uuid.New(),
				ApiKey:        apiKey,
				ExpiresAt:     expiresAt,
			}, nil
		},
	})
	uc.now = func() time.Time { return now }

	decision, err := uc.Authenticate(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, entities.KeyExpired, decision.Reason)
	assert.Equal(t, expiresAt, decision.ExpiresAt)
}

func TestKeyAuthAuthenticate_ValidKey(t *testing.T) {
	appID := uuid.New()
	uc := NewKeyAuthUsecase(&stubApiKeyRepo{
		findByKeyFn: func(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
			return &entities.ApiKey{
				ApplicationID: appID,
				ApiKey:        apiKey,
				ExpiresAt:     null.TimeFrom(time.Now().Add(time.Hour)),
			}, nil
		},
	})

	decision, err := uc.Authenticate(context.Background(), "deadbeef")
	require.NoError(t, err)
	require.True(t, decision.Accepted())
	assert.Equal(t, appID, decision.Context.ApplicationID)
}

func TestKeyAuthAuthenticate_NoExpiryIsValid(t *testing.T) {
	uc := NewKeyAuthUsecase(&stubApiKeyRepo{
		findByKeyFn: func(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
			return &entities.ApiKey{ApplicationID: uuid.New(), ApiKey: apiKey}, nil
		},
	})

	decision, err := uc.Authenticate(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.True(t, decision.Accepted())
}

func TestKeyAuthAuthenticate_StoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	uc := NewKeyAuthUsecase(&stubApiKeyRepo{
		findByKeyFn: func(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
			return nil, storeErr
		},
	})

	decision, err := uc.Authenticate(context.Background(), "deadbeef")
	require.Error(t, err)
	assert.Nil(t, decision)
	assert.ErrorIs(t, err, storeErr)
}
