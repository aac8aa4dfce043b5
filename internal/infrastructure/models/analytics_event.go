package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type AnalyticsEvent struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index"`
	EventName     string    `gorm:"type:varchar(255);not null;index"`
	UserID        null.String
	URL           null.String
	Referrer      null.String
	Device        null.String
	IPAddress     null.String `gorm:"column:ip_address"`
	Timestamp     time.Time   `gorm:"index"`
	Metadata      JSONMap     `gorm:"type:jsonb"`
}
