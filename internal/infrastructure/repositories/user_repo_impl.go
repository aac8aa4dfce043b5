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

// UserRepository implements tenant user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts the user or, when the subject id is already registered,
// refreshes email and name in place. The stored row is returned so callers
// see the original id and created_at after a conflict.
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) (*entities.User, error) {
	m := &models.User{
		ID:           user.ID,
		GoogleAuthID: user.GoogleAuthID,
		Email:        user.Email,
		Name:         user.Name,
		CreatedAt:    user.CreatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "google_auth_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"email": m.Email,
			"name":  m.Name,
		}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}

	return r.GetBySubjectID(ctx, user.GoogleAuthID)
}

// GetBySubjectID gets a user by its Google subject id
func (r *UserRepository) GetBySubjectID(ctx context.Context, subjectID string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("google_auth_id = ?", subjectID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.User{
		ID:           m.ID,
		GoogleAuthID: m.GoogleAuthID,
		Email:        m.Email,
		Name:         m.Name,
		CreatedAt:    m.CreatedAt,
	}, nil
}
