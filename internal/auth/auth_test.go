package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = "voxa-test"

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("Bearer"))
	assert.Equal(t, "", BearerToken(""))
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{ID: "u1", Email: "a@b.c"})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", id.ID)
}

type tokenFixture struct {
	key *rsa.PrivateKey
	now time.Time
}

func newFixture(t *testing.T) tokenFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return tokenFixture{key: key, now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f tokenFixture) sign(t *testing.T, kid string, mutate func(*firebaseClaims)) string {
	t.Helper()
	claims := &firebaseClaims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "firebase-uid-1",
			Issuer:    "https://securetoken.google.com/" + testProject,
			Audience:  jwt.ClaimStrings{testProject},
			IssuedAt:  jwt.NewNumericDate(f.now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(f.now.Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func (f tokenFixture) verifier() *FirebaseVerifier {
	v := NewFirebaseVerifier(testProject, StaticKeys{"k1": &f.key.PublicKey})
	v.now = func() time.Time { return f.now }
	return v
}

func TestFirebaseVerifier_Valid(t *testing.T) {
	f := newFixture(t)

	id, err := f.verifier().Verify(context.Background(), f.sign(t, "k1", nil))
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: "firebase-uid-1", Email: "user@example.com"}, id)
}

func TestFirebaseVerifier_Rejects(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		kid    string
		mutate func(*firebaseClaims)
	}{
		{"unknown kid", "k2", nil},
		{"wrong audience", "k1", func(c *firebaseClaims) { c.Audience = jwt.ClaimStrings{"other"} }},
		{"wrong issuer", "k1", func(c *firebaseClaims) { c.Issuer = "https://accounts.google.com" }},
		{"expired", "k1", func(c *firebaseClaims) { c.ExpiresAt = jwt.NewNumericDate(f.now.Add(-time.Second)) }},
		{"no expiry", "k1", func(c *firebaseClaims) { c.ExpiresAt = nil }},
		{"issued in the future", "k1", func(c *firebaseClaims) { c.IssuedAt = jwt.NewNumericDate(f.now.Add(time.Hour)) }},
		{"empty subject", "k1", func(c *firebaseClaims) { c.Subject = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.verifier().Verify(context.Background(), f.sign(t, tt.kid, tt.mutate))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := f.verifier().Verify(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"})
		token.Header["kid"] = "k1"
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = f.verifier().Verify(context.Background(), signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func jwksHandler(kid string, pub *rsa.PublicKey, hits *atomic.Int32) http.HandlerFunc {
	set := map[string]any{"keys": []map[string]string{{
		"kty": "RSA",
		"use": "sig",
		"alg": "RS256",
		"kid": kid,
		"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}}}
	return func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	}
}

func TestJWKSKeys(t *testing.T) {
	f := newFixture(t)

	var hits atomic.Int32
	srv := httptest.NewServer(jwksHandler("k1", &f.key.PublicKey, &hits))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys, err := newJWKSKeys(ctx, srv.URL, srv.Client())
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())

	v := NewFirebaseVerifier(testProject, keys)
	v.now = func() time.Time { return f.now }

	id, err := v.Verify(context.Background(), f.sign(t, "k1", nil))
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid-1", id.ID)

	t.Run("known kid is served from cache", func(t *testing.T) {
		_, err := v.Verify(context.Background(), f.sign(t, "k1", nil))
		require.NoError(t, err)
		assert.EqualValues(t, 1, hits.Load())
	})

	t.Run("unknown kid does not refetch fresh keys", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			_, err := v.Verify(context.Background(), f.sign(t, "forged-"+strconv.Itoa(i), nil))
			assert.ErrorIs(t, err, ErrInvalidToken)
		}
		assert.EqualValues(t, 1, hits.Load())
	})
}

func TestSessionStore_EmptyToken(t *testing.T) {
	s := NewSessionStore(nil)
	_, err := s.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Create(context.Background(), Identity{})
	assert.Error(t, err)

	assert.NoError(t, s.Revoke(context.Background(), ""))
}
