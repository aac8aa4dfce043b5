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

// ApplicationRepository implements application data operations
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Upsert inserts the application or refreshes name and domain for the user's
// existing one. The conflict target is user_id: one application per user.
func (r *ApplicationRepository) Upsert(ctx context.Context, app *entities.Application) (*entities.Application, error) {
	m := &models.Application{
		ID:        app.ID,
		UserID:    app.UserID,
		Name:      app.Name,
		Domain:    app.Domain,
		CreatedAt: app.CreatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":   m.Name,
			"domain": m.Domain,
		}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, app.UserID)
}

// GetByUserID gets the user's application
func (r *ApplicationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Application, error) {
	var m models.Application
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Application{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Domain:    m.Domain,
		CreatedAt: m.CreatedAt,
	}, nil
}
