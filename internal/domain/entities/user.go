package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered tenant. Users are keyed by the stable subject
// id issued by Google, not by email.
type User struct {
	ID           uuid.UUID `json:"id"`
	GoogleAuthID string    `json:"google_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// GoogleClaims is the verified claim set extracted from a Google ID token.
type GoogleClaims struct {
	SubjectID string
	Email     string
	Name      string
}

// RegisterInput is the optional request body for registration.
type RegisterInput struct {
	AppName string `json:"app_name"`
	Domain  string `json:"domain"`
}

// RegisteredUser is the user block of the register response.
type RegisteredUser struct {
	ID       uuid.UUID `json:"id"`
	GoogleID string    `json:"google_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
}

// RegisterResponse is returned by a successful registration. APIKey is the
// freshly issued secret, shown to the caller here and on regenerate only.
type RegisterResponse struct {
	User        RegisteredUser `json:"user"`
	Application *Application   `json:"application"`
	APIKey      string         `json:"api_key"`
}
