package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"analytics-gate.backend/internal/domain/entities"
	domainerrors "analytics-gate.backend/internal/domain/errors"
	"analytics-gate.backend/internal/infrastructure/models"
)

// ApiKeyRepository implements API key data operations
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new api key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// Upsert replaces the application's key slot: on conflict the secret,
// revocation flag and expiry are overwritten while created_at keeps the
// value from the first insert. The old key string stops resolving entirely.
func (r *ApiKeyRepository) Upsert(ctx context.Context, key *entities.ApiKey) (*entities.ApiKey, error) {
	m := &models.ApiKey{
		ID:            key.ID,
		ApplicationID: key.ApplicationID,
		ApiKey:        key.ApiKey,
		IsRevoked:     key.IsRevoked,
		ExpiresAt:     key.ExpiresAt,
		CreatedAt:     key.CreatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "application_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"api_key":    m.ApiKey,
			"is_revoked": m.IsRevoked,
			"expires_at": m.ExpiresAt,
		}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}

	var stored models.ApiKey
	if err := r.db.WithContext(ctx).Where("application_id = ?", key.ApplicationID).First(&stored).Error; err != nil {
		return nil, err
	}
	return toApiKeyEntity(&stored), nil
}

// FindByKey resolves a presented key string by exact match
func (r *ApiKeyRepository) FindByKey(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toApiKeyEntity(&m), nil
}

// ListActiveByUserID returns the user's non-revoked keys joined with their
// applications, newest first
func (r *ApiKeyRepository) ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKeySummary, error) {
	var rows []entities.ApiKeySummary
	err := r.db.WithContext(ctx).
		Table("api_keys").
		Select("api_keys.api_key, api_keys.is_revoked, api_keys.expires_at, api_keys.created_at, applications.id AS application_id, applications.name AS app_name, applications.domain").
		Joins("JOIN applications ON api_keys.application_id = applications.id").
		Where("applications.user_id = ? AND api_keys.is_revoked = ?", userID, false).
		Order("api_keys.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.ApiKeySummary, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

// RevokeByApplicationID flips is_revoked for the application's key slot and
// reports how many rows changed
func (r *ApiKeyRepository) RevokeByApplicationID(ctx context.Context, applicationID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ApiKey{}).
		Where("application_id = ?", applicationID).
		Update("is_revoked", true)
	return result.RowsAffected, result.Error
}

func toApiKeyEntity(m *models.ApiKey) *entities.ApiKey {
	return &entities.ApiKey{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		ApiKey:        m.ApiKey,
		IsRevoked:     m.IsRevoked,
		ExpiresAt:     m.ExpiresAt,
		CreatedAt:     m.CreatedAt,
	}
}
