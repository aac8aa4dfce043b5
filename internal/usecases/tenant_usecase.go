package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"analytics-gate.backend/internal/domain/entities"
	domainerrors "analytics-gate.backend/internal/domain/errors"
	"analytics-gate.backend/internal/domain/repositories"
)

const defaultAppName = "My Application"

// TenantUsecase implements the control plane: registration and the API key
// lifecycle. All operations act on the identity carried by verified Google
// claims; registration is an idempotent merge keyed by subject id.
type TenantUsecase struct {
	userRepo    repositories.UserRepository
	appRepo     repositories.ApplicationRepository
	apiKeyRepo  repositories.ApiKeyRepository
	keyTTL      time.Duration
	now         func() time.Time
	generateKey func() (string, error)
}

// NewTenantUsecase creates a new tenant usecase
func NewTenantUsecase(
	userRepo repositories.UserRepository,
	appRepo repositories.ApplicationRepository,
	apiKeyRepo repositories.ApiKeyRepository,
	keyTTL time.Duration,
) *TenantUsecase {
	return &TenantUsecase{
		userRepo:    userRepo,
		appRepo:     appRepo,
		apiKeyRepo:  apiKeyRepo,
		keyTTL:      keyTTL,
		now:         time.Now,
		generateKey: GenerateAPIKey,
	}
}

// Register upserts the user and its application, then issues a fresh API
// key into the application's key slot. Calling it again updates the user
// and application in place and rotates the key as a side effect.
func (u *TenantUsecase) Register(ctx context.Context, claims *entities.GoogleClaims, input *entities.RegisterInput) (*entities.RegisterResponse, error) {
	appName := input.AppName
	if appName == "" {
		appName = defaultAppName
	}

	user, err := u.userRepo.Upsert(ctx, &entities.User{
		GoogleAuthID: claims.SubjectID,
		Email:        claims.Email,
		Name:         claims.Name,
	})
	if err != nil {
		return nil, err
	}

	app, err := u.appRepo.Upsert(ctx, &entities.Application{
		UserID: user.ID,
		Name:   appName,
		Domain: input.Domain,
	})
	if err != nil {
		return nil, err
	}

	apiKey, err := u.generateKey()
	if err != nil {
		return nil, err
	}

	_, err = u.apiKeyRepo.Upsert(ctx, &entities.ApiKey{
		ApplicationID: app.ID,
		ApiKey:        apiKey,
		IsRevoked:     false,
		ExpiresAt:     null.TimeFrom(u.now().Add(u.keyTTL)),
	})
	if err != nil {
		return nil, err
	}

	return &entities.RegisterResponse{
		User: entities.RegisteredUser{
			ID:       user.ID,
			GoogleID: user.GoogleAuthID,
			Email:    user.Email,
			Name:     user.Name,
		},
		Application: app,
		APIKey:      apiKey,
	}, nil
}

// ListKeys returns the caller's non-revoked keys, newest first
func (u *TenantUsecase) ListKeys(ctx context.Context, subjectID string) ([]*entities.ApiKeySummary, error) {
	user, err := u.userRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found. Please register first.")
		}
		return nil, err
	}

	keys, err := u.apiKeyRepo.ListActiveByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, domainerrors.NotFound("No API keys found for this user")
	}
	return keys, nil
}

// RevokeKey marks the caller's key slot revoked. The key stays revoked
// until regenerate overwrites the slot.
func (u *TenantUsecase) RevokeKey(ctx context.Context, subjectID string) error {
	app, err := u.resolveApplication(ctx, subjectID)
	if err != nil {
		return err
	}

	affected, err := u.apiKeyRepo.RevokeByApplicationID(ctx, app.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainerrors.NotFound("API key not found. Please generate an API key first.")
	}
	return nil
}

// RegenerateKey replaces the caller's key slot with a fresh key. The old
// key string stops resolving entirely.
func (u *TenantUsecase) RegenerateKey(ctx context.Context, subjectID string) (*entities.RegenerateResponse, error) {
	app, err := u.resolveApplication(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	apiKey, err := u.generateKey()
	if err != nil {
		return nil, err
	}

	stored, err := u.apiKeyRepo.Upsert(ctx, &entities.ApiKey{
		ApplicationID: app.ID,
		ApiKey:        apiKey,
		IsRevoked:     false,
		ExpiresAt:     null.TimeFrom(u.now().Add(u.keyTTL)),
	})
	if err != nil {
		return nil, err
	}

	return &entities.RegenerateResponse{
		ApiKey:    stored.ApiKey,
		CreatedAt: stored.CreatedAt,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

func (u *TenantUsecase) resolveApplication(ctx context.Context, subjectID string) (*entities.Application, error) {
	user, err := u.userRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found. Please register first.")
		}
		return nil, err
	}

	app, err := u.appRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Application not found. Please create an application first.")
		}
		return nil, err
	}
	return app, nil
}
