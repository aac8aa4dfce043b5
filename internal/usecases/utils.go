package usecases

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateAPIKey returns a fresh key: 32 random bytes rendered as 64
// lowercase hexadecimal characters.
func GenerateAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

var dateBoundLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateBound(s string) (time.Time, bool) {
	for _, layout := range dateBoundLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
