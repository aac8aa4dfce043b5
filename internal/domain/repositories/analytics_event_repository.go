package repositories

import (
	"context"

	"github.com/google/uuid"

	"analytics-gate.backend/internal/domain/entities"
)

// AnalyticsEventRepository defines the append-only event store and its two
// read paths. Every query is scoped by application id; aggregations never
// cross applications.
type AnalyticsEventRepository interface {
	Insert(ctx context.Context, event *entities.AnalyticsEvent) error
	EventSummary(ctx context.Context, applicationID uuid.UUID, query *entities.EventSummaryQuery) ([]entities.DeviceGroup, error)
	TopUserCluster(ctx context.Context, applicationID uuid.UUID, userID string) (*entities.UserCluster, error)
}
