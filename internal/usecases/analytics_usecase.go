package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"analytics-gate.backend/internal/domain/entities"
	domainerrors "analytics-gate.backend/internal/domain/errors"
	"analytics-gate.backend/internal/domain/repositories"
)

// AnalyticsUsecase implements the data plane: event collection and the two
// read aggregations. Every operation is scoped to the application resolved
// from the caller's API key.
type AnalyticsUsecase struct {
	eventRepo repositories.AnalyticsEventRepository
	now       func() time.Time
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(eventRepo repositories.AnalyticsEventRepository) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// Collect validates and stores a single event for the given application.
// A missing timestamp defaults to ingestion time; a present but unparseable
// one is rejected rather than silently replaced.
func (u *AnalyticsUsecase) Collect(ctx context.Context, applicationID uuid.UUID, input *entities.CollectEventInput) (*entities.CollectEventResponse, error) {
	if input.Event == "" {
		return nil, domainerrors.BadRequest("Event name required")
	}

	timestamp := u.now()
	if input.Timestamp.Set {
		if !input.Timestamp.Valid {
			return nil, domainerrors.BadRequest("Invalid timestamp")
		}
		timestamp = input.Timestamp.Time
	}

	event := &entities.AnalyticsEvent{
		ApplicationID: applicationID,
		EventName:     input.Event,
		UserID:        input.UserID,
		URL:           input.URL,
		Referrer:      input.Referrer,
		Device:        input.Device,
		IPAddress:     input.IPAddress,
		Timestamp:     timestamp,
		Metadata:      input.Metadata,
	}
	if err := u.eventRepo.Insert(ctx, event); err != nil {
		return nil, err
	}

	return &entities.CollectEventResponse{
		Success:    true,
		EventID:    event.ID,
		RecordedAt: event.Timestamp,
	}, nil
}

// EventSummary aggregates counts for one event name, optionally bounded by
// start/end dates, broken down by device. The overall uniqueUsers figure is
// the largest per-device unique count, not a cross-device distinct.
func (u *AnalyticsUsecase) EventSummary(ctx context.Context, applicationID uuid.UUID, eventName, startDate, endDate string) (*entities.EventSummaryResponse, error) {
	if eventName == "" {
		return nil, domainerrors.BadRequest("Event name required")
	}

	query := &entities.EventSummaryQuery{Event: eventName}
	if startDate != "" {
		t, ok := parseDateBound(startDate)
		if !ok {
			return nil, domainerrors.BadRequest("Invalid startDate")
		}
		query.StartDate = null.TimeFrom(t)
	}
	if endDate != "" {
		t, ok := parseDateBound(endDate)
		if !ok {
			return nil, domainerrors.BadRequest("Invalid endDate")
		}
		query.EndDate = null.TimeFrom(t)
	}

	groups, err := u.eventRepo.EventSummary(ctx, applicationID, query)
	if err != nil {
		return nil, err
	}

	resp := &entities.EventSummaryResponse{
		Event:      eventName,
		DeviceData: map[string]int64{},
	}
	for _, g := range groups {
		resp.Count += g.Count
		if g.UniqueUsers > resp.UniqueUsers {
			resp.UniqueUsers = g.UniqueUsers
		}
		if g.Device.Valid {
			resp.DeviceData[g.Device.String] = g.Count
		}
	}
	return resp, nil
}

// UserStats profiles a single end user by their busiest metadata/IP cluster
func (u *AnalyticsUsecase) UserStats(ctx context.Context, applicationID uuid.UUID, userID string) (*entities.UserStatsResponse, error) {
	if userID == "" {
		return nil, domainerrors.BadRequest("userId required")
	}

	cluster, err := u.eventRepo.TopUserCluster(ctx, applicationID, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No events found")
		}
		return nil, err
	}

	resp := &entities.UserStatsResponse{
		UserID:      userID,
		TotalEvents: cluster.TotalEvents,
		IPAddress:   cluster.IPAddress,
	}
	if cluster.Metadata != nil {
		resp.DeviceDetails.Browser = cluster.Metadata["browser"]
		resp.DeviceDetails.OS = cluster.Metadata["os"]
	}
	return resp, nil
}
