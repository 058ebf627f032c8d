package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"
)

// GoogleJWKSURL serves the JSON Web Key Set that signs Firebase ID tokens.
const GoogleJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

const (
	jwksRefreshInterval = time.Hour
	// A token naming a kid we do not hold may trigger at most one extra fetch per interval.
	unknownKIDInterval = 5 * time.Minute
)

// KeySource resolves the verification key for a parsed token.
type KeySource interface {
	KeyfuncCtx(ctx context.Context) jwt.Keyfunc
}

// StaticKeys is a fixed KeySource keyed by kid.
type StaticKeys map[string]*rsa.PublicKey

func (s StaticKeys) KeyfuncCtx(_ context.Context) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if k, ok := s[kid]; ok {
			return k, nil
		}
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
}

// NewGoogleKeys fetches Google's signing keys and refreshes them in the background until ctx is done.
func NewGoogleKeys(ctx context.Context, client *http.Client) (KeySource, error) {
	return newJWKSKeys(ctx, GoogleJWKSURL, client)
}

func newJWKSKeys(ctx context.Context, url string, client *http.Client) (keyfunc.Keyfunc, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	remote, err := jwkset.NewStorageFromHTTP(url, jwkset.HTTPClientStorageOptions{
		Client:          client,
		Ctx:             ctx,
		RefreshInterval: jwksRefreshInterval,
		RefreshErrorHandler: func(ctx context.Context, err error) {
			slog.WarnContext(ctx, "failed to refresh signing keys", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch signing keys: %w", err)
	}

	// The startup fetch counts against the unknown-kid budget.
	unknownKID := rate.NewLimiter(rate.Every(unknownKIDInterval), 1)
	unknownKID.Allow()

	storage, err := jwkset.NewHTTPClient(jwkset.HTTPClientOptions{
		HTTPURLs:          map[string]jwkset.Storage{url: remote},
		RateLimitWaitMax:  time.Second,
		RefreshUnknownKID: unknownKID,
	})
	if err != nil {
		return nil, fmt.Errorf("signing key client: %w", err)
	}

	return keyfunc.New(keyfunc.Options{
		Ctx:          ctx,
		Storage:      storage,
		UseWhitelist: []jwkset.USE{jwkset.UseSig},
	})
}

type firebaseClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// FirebaseVerifier verifies Firebase Authentication ID tokens.
type FirebaseVerifier struct {
	projectID string
	keys      KeySource
	now       func() time.Time
}

func NewFirebaseVerifier(projectID string, keys KeySource) *FirebaseVerifier {
	return &FirebaseVerifier{projectID: projectID, keys: keys, now: time.Now}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrInvalidToken
	}

	claims := &firebaseClaims{}
	keyFor := v.keys.KeyfuncCtx(ctx)
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if kid, _ := t.Header["kid"].(string); kid == "" {
			return nil, errors.New("missing kid header")
		}
		return keyFor(t)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return Identity{ID: claims.Subject, Email: claims.Email}, nil
}
