package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "voxa-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017/voxa", cfg.MongoURI)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, AuthProviderFirebase, cfg.AuthProvider)
	assert.Equal(t, "voxa-test", cfg.FirebaseProjectID)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.AllowedHost)
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("HOST", "https://api.voxa.app:443/v1")
	t.Setenv("ALLOWED_ORIGINS", "https://voxa.app, https://www.voxa.app")
	t.Setenv("FIREBASE_PROJECT_ID", "voxa")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "api.voxa.app", cfg.AllowedHost)
	assert.Equal(t, []string{"https://voxa.app", "https://www.voxa.app"}, cfg.AllowedOrigins)
}

func TestLoad_ProjectFromServiceAccount(t *testing.T) {
	account := `{"type":"service_account","project_id":"voxa-from-file"}`

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sa.json")
		require.NoError(t, os.WriteFile(path, []byte(account), 0o600))
		t.Setenv("FIREBASE_SERVICE_ACCOUNT_PATH", path)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "voxa-from-file", cfg.FirebaseProjectID)
	})

	t.Run("base64", func(t *testing.T) {
		t.Setenv("FIREBASE_SERVICE_ACCOUNT_BASE64", base64.StdEncoding.EncodeToString([]byte(account)))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "voxa-from-file", cfg.FirebaseProjectID)
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("no firebase project", func(t *testing.T) {
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("session without redis", func(t *testing.T) {
		t.Setenv("AUTH_PROVIDER", "session")
		_, err := Load()
		assert.ErrorContains(t, err, "REDIS_URI")
	})

	t.Run("unknown storage", func(t *testing.T) {
		t.Setenv("FIREBASE_PROJECT_ID", "voxa")
		t.Setenv("AUDIO_STORAGE", "ftp")
		_, err := Load()
		assert.ErrorContains(t, err, "AUDIO_STORAGE")
	})

	t.Run("bad shutdown timeout", func(t *testing.T) {
		t.Setenv("FIREBASE_PROJECT_ID", "voxa")
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT")
	})
}
