package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const statePrefix = "oauth_state:"

var (
	setStateValue = Set
	getStateValue = Get
	delStateValue = Del
)

// StateStore issues and consumes one-time CSRF states for the OAuth login
// flow. A state is valid for one callback within its TTL.
type StateStore struct {
	ttl time.Duration
}

// NewStateStore creates a state store with the given state lifetime
func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{ttl: ttl}
}

// Issue mints a fresh random state and stores it with the configured TTL
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	state := hex.EncodeToString(buf)

	if err := setStateValue(ctx, statePrefix+state, "1", s.ttl); err != nil {
		return "", err
	}
	return state, nil
}

// Consume reports whether the state was previously issued and still live,
// deleting it so it cannot be replayed
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}

	_, err := getStateValue(ctx, statePrefix+state)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := delStateValue(ctx, statePrefix+state); err != nil {
		return false, err
	}
	return true, nil
}
