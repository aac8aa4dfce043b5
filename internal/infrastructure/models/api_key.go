package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type ApiKey struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ApplicationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ApiKey        string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	IsRevoked     bool      `gorm:"default:false;not null"`
	ExpiresAt     null.Time
	CreatedAt     time.Time
	Application   Application `gorm:"foreignKey:ApplicationID"`
}
