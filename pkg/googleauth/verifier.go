package googleauth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/golang-jwt/jwt/v5"

	"analytics-gate.backend/internal/domain/entities"
	domainerrors "analytics-gate.backend/internal/domain/errors"
)

// GoogleJWKSURL is Google's published signing key set.
const GoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// Google issues ID tokens under either issuer form.
const (
	issuerHTTPS = "https://accounts.google.com"
	issuerBare  = "accounts.google.com"
)

type idTokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Verifier validates Google-issued ID tokens against the configured OAuth
// client id. Every sub-failure (signature, expiry, audience, issuer)
// collapses into ErrVerificationFailed; callers never branch on the detail.
type Verifier struct {
	ClientID   string
	JWKSURL    string
	HTTPClient *http.Client
	CacheTTL   time.Duration

	mu        sync.Mutex
	keys      *jose.JSONWebKeySet
	fetchedAt time.Time
}

// NewVerifier creates a verifier bound to the given OAuth client id
func NewVerifier(clientID string) *Verifier {
	return &Verifier{
		ClientID:   clientID,
		JWKSURL:    GoogleJWKSURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		CacheTTL:   time.Hour,
	}
}

// Verify checks the raw ID token and returns its verified claim set
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*entities.GoogleClaims, error) {
	claims := &idTokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.ClientID),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		return v.publicKey(ctx, kid)
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrVerificationFailed
	}

	if iss := claims.Issuer; iss != issuerHTTPS && iss != issuerBare {
		return nil, domainerrors.ErrVerificationFailed
	}
	if claims.Subject == "" {
		return nil, domainerrors.ErrVerificationFailed
	}

	return &entities.GoogleClaims{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
	}, nil
}

func (v *Verifier) publicKey(ctx context.Context, kid string) (interface{}, error) {
	keySet, err := v.keySet(ctx, false)
	if err != nil {
		return nil, err
	}

	matches := keySet.Key(kid)
	if len(matches) == 0 {
		// key rotation: refetch once before giving up
		keySet, err = v.keySet(ctx, true)
		if err != nil {
			return nil, err
		}
		matches = keySet.Key(kid)
		if len(matches) == 0 {
			return nil, fmt.Errorf("no signing key for kid %q", kid)
		}
	}

	key, ok := matches[0].Key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("signing key is not RSA")
	}
	return key, nil
}

func (v *Verifier) keySet(ctx context.Context, force bool) (*jose.JSONWebKeySet, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !force && v.keys != nil && time.Since(v.fetchedAt) < v.CacheTTL {
		return v.keys, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.JWKSURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned status %d", resp.StatusCode)
	}

	var keySet jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&keySet); err != nil {
		return nil, err
	}

	v.keys = &keySet
	v.fetchedAt = time.Now()
	return v.keys, nil
}
