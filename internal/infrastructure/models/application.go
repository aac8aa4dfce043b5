package models

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Domain    string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	User      User `gorm:"foreignKey:UserID"`
}
