package usecases

import (
	"context"

	"github.com/google/uuid"

	"analytics-gate.backend/internal/domain/entities"
)

type stubUserRepo struct {
	upsertFn         func(ctx context.Context, user *entities.User) (*entities.User, error)
	getBySubjectIDFn func(ctx context.Context, subjectID string) (*entities.User, error)
}

func (s *stubUserRepo) Upsert(ctx context.Context, user *entities.User) (*entities.User, error) {
	return s.upsertFn(ctx, user)
}

func (s *stubUserRepo) GetBySubjectID(ctx context.Context, subjectID string) (*entities.User, error) {
	return s.getBySubjectIDFn(ctx, subjectID)
}

type stubApplicationRepo struct {
	upsertFn      func(ctx context.Context, app *entities.Application) (*entities.Application, error)
	getByUserIDFn func(ctx context.Context, userID uuid.UUID) (*entities.Application, error)
}

func (s *stubApplicationRepo) Upsert(ctx context.Context, app *entities.Application) (*entities.Application, error) {
	return s.upsertFn(ctx, app)
}

func (s *stubApplicationRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Application, error) {
	return s.getByUserIDFn(ctx, userID)
}

type stubApiKeyRepo struct {
	upsertFn                func(ctx context.Context, key *entities.ApiKey) (*entities.ApiKey, error)
	findByKeyFn             func(ctx context.Context, apiKey string) (*entities.ApiKey, error)
	listActiveByUserIDFn    func(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKeySummary, error)
	revokeByApplicationIDFn func(ctx context.Context, applicationID uuid.UUID) (int64, error)
}

func (s *stubApiKeyRepo) Upsert(ctx context.Context, key *entities.ApiKey) (*entities.ApiKey, error) {
	return s.upsertFn(ctx, key)
}

func (s *stubApiKeyRepo) FindByKey(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
	return s.findByKeyFn(ctx, apiKey)
}

func (s *stubApiKeyRepo) ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKeySummary, error) {
	return s.listActiveByUserIDFn(ctx, userID)
}

func (s *stubApiKeyRepo) RevokeByApplicationID(ctx context.Context, applicationID uuid.UUID) (int64, error) {
	return s.revokeByApplicationIDFn(ctx, applicationID)
}

type stubAnalyticsEventRepo struct {
	insertFn         func(ctx context.Context, event *entities.AnalyticsEvent) error
	eventSummaryFn   func(ctx context.Context, applicationID uuid.UUID, query *entities.EventSummaryQuery) ([]entities.DeviceGroup, error)
	topUserClusterFn func(ctx context.Context, applicationID uuid.UUID, userID string) (*entities.UserCluster, error)
}

func (s *stubAnalyticsEventRepo) Insert(ctx context.Context, event *entities.AnalyticsEvent) error {
	return s.insertFn(ctx, event)
}

func (s *stubAnalyticsEventRepo) EventSummary(ctx context.Context, applicationID uuid.UUID, query *entities.EventSummaryQuery) ([]entities.DeviceGroup, error) {
	return s.eventSummaryFn(ctx, applicationID, query)
}

func (s *stubAnalyticsEventRepo) TopUserCluster(ctx context.Context, applicationID uuid.UUID, userID string) (*entities.UserCluster, error) {
	return s.topUserClusterFn(ctx, applicationID, userID)
}
