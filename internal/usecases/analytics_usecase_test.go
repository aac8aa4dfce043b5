package usecases

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"analytics-gate.backend/internal/domain/entities"
	domainerrors "analytics-gate.backend/internal/domain/errors"
)

func TestAnalyticsCollect(t *testing.T) {
	appID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sent := time.Date(2025, 5, 30, 8, 15, 0, 0, time.UTC)

	var inserted *entities.AnalyticsEvent
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{
		insertFn: func(ctx context.Context, event *entities.AnalyticsEvent) error {
			event.ID = uuid.New()
			inserted = event
			return nil
		},
	})
	uc.now = func() time.Time { return now }

	resp, err := uc.Collect(context.Background(), appID, &entities.CollectEventInput{
		Event:     "page_view",
		UserID:    null.StringFrom("user123"),
		Device:    null.StringFrom("mobile"),
		Timestamp: entities.EventTime{Time: sent, Set: true, Valid: true},
		Metadata:  map[string]interface{}{"browser": "Chrome"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEqual(t, uuid.Nil, resp.EventID)
	assert.Equal(t, sent, resp.RecordedAt)

	require.NotNil(t, inserted)
	assert.Equal(t, appID, inserted.ApplicationID)
	assert.Equal(t, "page_view", inserted.EventName)
	assert.Equal(t, sent, inserted.Timestamp)
}

func TestAnalyticsCollect_DefaultsTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{
		insertFn: func(ctx context.Context, event *entities.AnalyticsEvent) error {
			return nil
		},
	})
	uc.now = func() time.Time { return now }

	resp, err := uc.Collect(context.Background(), uuid.New(), &entities.CollectEventInput{Event: "signup"})
	require.NoError(t, err)
	assert.Equal(t, now, resp.RecordedAt)
}

func TestAnalyticsCollect_MissingEventName(t *testing.T) {
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{})
	_, err := uc.Collect(context.Background(), uuid.New(), &entities.CollectEventInput{})
	requireAppError(t, err, http.StatusBadRequest, "Event name required")
}

func TestAnalyticsCollect_InvalidTimestamp(t *testing.T) {
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{})
	_, err := uc.Collect(context.Background(), uuid.New(), &entities.CollectEventInput{
		Event:     "page_view",
		Timestamp: entities.EventTime{Set: true, Valid: false},
	})
	requireAppError(t, err, http.StatusBadRequest, "Invalid timestamp")
}

func TestAnalyticsEventSummary_FoldsDeviceGroups(t *testing.T) {
	appID := uuid.New()
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{
		eventSummaryFn: func(ctx context.Context, id uuid.UUID, query *entities.EventSummaryQuery) ([]entities.DeviceGroup, error) {
			require.Equal(t, appID, id)
			require.Equal(t, "page_view", query.Event)
			return []entities.DeviceGroup{
				{Count: 50, UniqueUsers: 25, Device: null.StringFrom("mobile")},
				{Count: 30, UniqueUsers: 20, Device: null.StringFrom("desktop")},
			}, nil
		},
	})

	resp, err := uc.EventSummary(context.Background(), appID, "page_view", "", "")
	require.NoError(t, err)

	assert.Equal(t, "page_view", resp.Event)
	assert.Equal(t, int64(80), resp.Count)
	assert.Equal(t, int64(25), resp.UniqueUsers)
	assert.Equal(t, map[string]int64{"mobile": 50, "desktop": 30}, resp.DeviceData)
}

func TestAnalyticsEventSummary_NullDeviceCountsTowardTotals(t *testing.T) {
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{
		eventSummaryFn: func(ctx context.Context, id uuid.UUID, query *entities.EventSummaryQuery) ([]entities.DeviceGroup, error) {
			return []entities.DeviceGroup{
				{Count: 10, UniqueUsers: 4, Device: null.StringFrom("mobile")},
				{Count: 3, UniqueUsers: 2},
			}, nil
		},
	})

	resp, err := uc.EventSummary(context.Background(), uuid.New(), "page_view", "", "")
	require.NoError(t, err)

	assert.Equal(t, int64(13), resp.Count)
	assert.Equal(t, map[string]int64{"mobile": 10}, resp.DeviceData)
}

func TestAnalyticsEventSummary_EmptyResult(t *testing.T) {
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{
		eventSummaryFn: func(ctx context.Context, id uuid.UUID, query *entities.EventSummaryQuery) ([]entities.DeviceGroup, error) {
			return nil, nil
		},
	})

	resp, err := uc.EventSummary(context.Background(), uuid.New(), "page_view", "", "")
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.Count)
	assert.Equal(t, int64(0), resp.UniqueUsers)
	assert.NotNil(t, resp.DeviceData)
	assert.Empty(t, resp.DeviceData)
}

func TestAnalyticsEventSummary_DateBounds(t *testing.T) {
	var captured *entities.EventSummaryQuery
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{
		eventSummaryFn: func(ctx context.Context, id uuid.UUID, query *entities.EventSummaryQuery) ([]entities.DeviceGroup, error) {
			captured = query
			return nil, nil
		},
	})

	_, err := uc.EventSummary(context.Background(), uuid.New(), "page_view", "2025-05-01", "2025-06-01T00:00:00Z")
	require.NoError(t, err)

	require.NotNil(t, captured)
	require.True(t, captured.StartDate.Valid)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), captured.StartDate.Time)
	require.True(t, captured.EndDate.Valid)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), captured.EndDate.Time)
}

func TestAnalyticsEventSummary_Validation(t *testing.T) {
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{})

	_, err := uc.EventSummary(context.Background(), uuid.New(), "", "", "")
	requireAppError(t, err, http.StatusBadRequest, "Event name required")

	_, err = uc.EventSummary(context.Background(), uuid.New(), "page_view", "not-a-date", "")
	requireAppError(t, err, http.StatusBadRequest, "Invalid startDate")

	_, err = uc.EventSummary(context.Background(), uuid.New(), "page_view", "", "soon")
	requireAppError(t, err, http.StatusBadRequest, "Invalid endDate")
}

func TestAnalyticsUserStats(t *testing.T) {
	appID := uuid.New()
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{
		topUserClusterFn: func(ctx context.Context, id uuid.UUID, userID string) (*entities.UserCluster, error) {
			require.Equal(t, appID, id)
			require.Equal(t, "user123", userID)
			return &entities.UserCluster{
				TotalEvents: 42,
				Metadata:    map[string]interface{}{"browser": "Chrome", "os": "Linux"},
				IPAddress:   null.StringFrom("10.0.0.1"),
			}, nil
		},
	})

	resp, err := uc.UserStats(context.Background(), appID, "user123")
	require.NoError(t, err)

	assert.Equal(t, "user123", resp.UserID)
	assert.Equal(t, int64(42), resp.TotalEvents)
	assert.Equal(t, "Chrome", resp.DeviceDetails.Browser)
	assert.Equal(t, "Linux", resp.DeviceDetails.OS)
	assert.Equal(t, "10.0.0.1", resp.IPAddress.String)
}

func TestAnalyticsUserStats_PartialMetadata(t *testing.T) {
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{
		topUserClusterFn: func(ctx context.Context, id uuid.UUID, userID string) (*entities.UserCluster, error) {
			return &entities.UserCluster{TotalEvents: 3, Metadata: map[string]interface{}{"browser": "Firefox"}}, nil
		},
	})

	resp, err := uc.UserStats(context.Background(), uuid.New(), "user123")
	require.NoError(t, err)
	assert.Equal(t, "Firefox", resp.DeviceDetails.Browser)
	assert.Nil(t, resp.DeviceDetails.OS)
}

func TestAnalyticsUserStats_NoEvents(t *testing.T) {
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{
		topUserClusterFn: func(ctx context.Context, id uuid.UUID, userID string) (*entities.UserCluster, error) {
			return nil, domainerrors.ErrNotFound
		},
	})

	_, err := uc.UserStats(context.Background(), uuid.New(), "ghost")
	requireAppError(t, err, http.StatusNotFound, "No events found")
}

func TestAnalyticsUserStats_MissingUserID(t *testing.T) {
	uc := NewAnalyticsUsecase(&stubAnalyticsEventRepo{})
	_, err := uc.UserStats(context.Background(), uuid.New(), "")
	requireAppError(t, err, http.StatusBadRequest, "userId required")
}
