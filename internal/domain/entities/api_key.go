package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ApiKey is the single key slot owned by an application. Regenerate
// overwrites the row in place; revoke flips IsRevoked until the next
// regenerate.
type ApiKey struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	ApiKey        string
	IsRevoked     bool
	ExpiresAt     null.Time
	CreatedAt     time.Time
}

// ApiKeySummary is one row of the key listing, joined with the owning
// application.
type ApiKeySummary struct {
	ApiKey        string    `json:"api_key"`
	IsRevoked     bool      `json:"is_revoked"`
	ExpiresAt     null.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
	ApplicationID uuid.UUID `json:"application_id"`
	AppName       string    `json:"app_name"`
	Domain        string    `json:"domain"`
}

// RegenerateResponse is returned when the key slot is rotated explicitly.
type RegenerateResponse struct {
	ApiKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt null.Time `json:"expires_at"`
}

// KeyRejectionReason tags why a presented API key is non-authoritative.
type KeyRejectionReason string

const (
	KeyMissing KeyRejectionReason = "missing"
	KeyUnknown KeyRejectionReason = "unknown"
	KeyRevoked KeyRejectionReason = "revoked"
	KeyExpired KeyRejectionReason = "expired"
)

// KeyContext is the resolved scope of an accepted API key.
type KeyContext struct {
	ApplicationID uuid.UUID
}

// KeyDecision is the outcome of authenticating a presented key: either
// Context is set, or Reason (with ExpiresAt for expired keys) describes the
// rejection. HTTP status and body are derived from this variant alone.
type KeyDecision struct {
	Context   *KeyContext
	Reason    KeyRejectionReason
	ExpiresAt null.Time
}

// Accepted reports whether the key resolved to an application.
func (d *KeyDecision) Accepted() bool {
	return d.Context != nil
}
