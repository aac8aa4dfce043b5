package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	GoogleAuthID string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	Name         string    `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
}
