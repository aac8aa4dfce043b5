package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"analytics-gate.backend/internal/domain/entities"
	domainerrors "analytics-gate.backend/internal/domain/errors"
	"analytics-gate.backend/internal/infrastructure/models"
)

// AnalyticsEventRepository implements the append-only event store
type AnalyticsEventRepository struct {
	db *gorm.DB
}

// NewAnalyticsEventRepository creates a new analytics event repository
func NewAnalyticsEventRepository(db *gorm.DB) *AnalyticsEventRepository {
	return &AnalyticsEventRepository{db: db}
}

// Insert persists one event. The assigned id and normalized timestamp are
// written back to the entity.
func (r *AnalyticsEventRepository) Insert(ctx context.Context, event *entities.AnalyticsEvent) error {
	m := &models.AnalyticsEvent{
		ID:            event.ID,
		ApplicationID: event.ApplicationID,
		EventName:     event.EventName,
		UserID:        event.UserID,
		URL:           event.URL,
		Referrer:      event.Referrer,
		Device:        event.Device,
		IPAddress:     event.IPAddress,
		Timestamp:     event.Timestamp,
		Metadata:      models.JSONMap(event.Metadata),
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	event.ID = m.ID
	event.Timestamp = m.Timestamp
	return nil
}

type deviceGroupRow struct {
	Count       int64
	UniqueUsers int64
	Device      null.String
}

// EventSummary groups the application's events with the given name by
// device, optionally bounded by event time on either side
func (r *AnalyticsEventRepository) EventSummary(ctx context.Context, applicationID uuid.UUID, query *entities.EventSummaryQuery) ([]entities.DeviceGroup, error) {
	q := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("COUNT(*) AS count, COUNT(DISTINCT user_id) AS unique_users, device").
		Where("application_id = ? AND event_name = ?", applicationID, query.Event)

	if query.StartDate.Valid {
		q = q.Where("timestamp >= ?", query.StartDate.Time)
	}
	if query.EndDate.Valid {
		q = q.Where("timestamp <= ?", query.EndDate.Time)
	}

	var rows []deviceGroupRow
	if err := q.Group("device").Scan(&rows).Error; err != nil {
		return nil, err
	}

	groups := make([]entities.DeviceGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, entities.DeviceGroup{
			Count:       row.Count,
			UniqueUsers: row.UniqueUsers,
			Device:      row.Device,
		})
	}
	return groups, nil
}

type userClusterRow struct {
	TotalEvents int64
	Metadata    models.JSONMap
	IPAddress   null.String
}

// TopUserCluster returns the (metadata, ip) group with the most events for
// one end user, or ErrNotFound when the user has no events
func (r *AnalyticsEventRepository) TopUserCluster(ctx context.Context, applicationID uuid.UUID, userID string) (*entities.UserCluster, error) {
	var row userClusterRow
	result := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("COUNT(*) AS total_events, metadata, ip_address").
		Where("application_id = ? AND user_id = ?", applicationID, userID).
		Group("metadata, ip_address").
		Order("total_events DESC").
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}

	return &entities.UserCluster{
		TotalEvents: row.TotalEvents,
		Metadata:    map[string]interface{}(row.Metadata),
		IPAddress:   row.IPAddress,
	}, nil
}
