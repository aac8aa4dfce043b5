package entities

import (
	"bytes"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AnalyticsEvent is one append-only occurrence of a named action, scoped to
// an application. UserID is the caller's end-user identifier and is a
// namespace of its own, unrelated to platform users.
type AnalyticsEvent struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	EventName     string
	UserID        null.String
	URL           null.String
	Referrer      null.String
	Device        null.String
	IPAddress     null.String
	Timestamp     time.Time
	Metadata      map[string]interface{}
}

// EventTime accepts the timestamp shapes clients actually send: RFC 3339
// strings (with or without sub-seconds or zone), plain dates, and epoch
// milliseconds. A value that was present but unparseable is kept as
// Set && !Valid so the caller can reject it explicitly.
type EventTime struct {
	Time  time.Time
	Set   bool
	Valid bool
}

var eventTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON never fails; parse errors are reported through Valid.
func (t *EventTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	t.Set = true

	if len(data) >= 2 && data[0] == '"' {
		s := string(data[1 : len(data)-1])
		for _, layout := range eventTimeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed
				t.Valid = true
				return nil
			}
		}
		return nil
	}

	// epoch milliseconds
	if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		t.Time = time.UnixMilli(ms).UTC()
		t.Valid = true
	}
	return nil
}

// CollectEventInput is the ingestion request body.
type CollectEventInput struct {
	Event     string                 `json:"event"`
	UserID    null.String            `json:"user_id"`
	URL       null.String            `json:"url"`
	Referrer  null.String            `json:"referrer"`
	Device    null.String            `json:"device"`
	IPAddress null.String            `json:"ipAddress"`
	Timestamp EventTime              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// CollectEventResponse acknowledges a persisted event.
type CollectEventResponse struct {
	Success    bool      `json:"success"`
	EventID    uuid.UUID `json:"event_id"`
	RecordedAt time.Time `json:"recorded_at"`
}

// EventSummaryQuery bounds the per-event aggregation.
type EventSummaryQuery struct {
	Event     string
	StartDate null.Time
	EndDate   null.Time
}

// DeviceGroup is one grouped row of the event summary aggregation.
type DeviceGroup struct {
	Count       int64
	UniqueUsers int64
	Device      null.String
}

// EventSummaryResponse folds the device groups: Count sums per-device
// counts, UniqueUsers takes the per-device maximum, and DeviceData maps
// device label to count (null devices are folded into the totals only).
type EventSummaryResponse struct {
	Event       string           `json:"event"`
	Count       int64            `json:"count"`
	UniqueUsers int64            `json:"uniqueUsers"`
	DeviceData  map[string]int64 `json:"deviceData"`
}

// UserCluster is the highest-volume (metadata, ip) group for one end user.
type UserCluster struct {
	TotalEvents int64
	Metadata    map[string]interface{}
	IPAddress   null.String
}

// DeviceDetails carries the browser/os fields of the winning cluster's
// metadata; absent keys serialize as null.
type DeviceDetails struct {
	Browser interface{} `json:"browser"`
	OS      interface{} `json:"os"`
}

// UserStatsResponse is the per-user profile.
type UserStatsResponse struct {
	UserID        string        `json:"userId"`
	TotalEvents   int64         `json:"totalEvents"`
	DeviceDetails DeviceDetails `json:"deviceDetails"`
	IPAddress     null.String   `json:"ipAddress"`
}
