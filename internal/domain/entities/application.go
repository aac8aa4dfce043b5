package entities

import (
	"time"

	"github.com/google/uuid"
)

// Application is the per-tenant container that groups analytics events and
// owns the API key slot. Each user has at most one application.
type Application struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
}
