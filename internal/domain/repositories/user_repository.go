package repositories

import (
	"context"

	"analytics-gate.backend/internal/domain/entities"
)

// UserRepository defines tenant user data operations. Upsert is keyed by the
// Google subject id: an existing user keeps its id while email and name are
// refreshed.
type UserRepository interface {
	Upsert(ctx context.Context, user *entities.User) (*entities.User, error)
	GetBySubjectID(ctx context.Context, subjectID string) (*entities.User, error)
}
