package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	AuthProviderFirebase = "firebase"
	AuthProviderSession  = "session"

	AudioStorageCloudinary = "cloudinary"
	AudioStorageS3         = "s3"
)

type Config struct {
	MongoURI       string
	RedisURI       string // optional: enables rate limiting and session auth
	Port           string
	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	Host           string   // Raw HOST env (e.g. https://api.voxa.app)
	AllowedHost    string   // Hostname only for strict host check (production only)
	Environment    string   // ENV: production, development, etc.
	SentryDSN      string

	AuthProvider      string
	FirebaseProjectID string

	AudioStorage        string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	S3Region            string
	S3Bucket            string
	S3AccessKey         string
	S3SecretKey         string
	S3Endpoint          string
	S3PublicURL         string

	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:5000")

	// AllowedHost is only set in production; host check is skipped in development
	var allowedHost string
	if env == "production" {
		allowedHost = hostname(host)
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" && !containsOrigin(allowedOrigins, u) {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	shutdown, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/voxa")),
		RedisURI:       getEnv("REDIS_URI", ""),
		Port:           getEnv("PORT", "5000"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,
		Host:           host,
		AllowedHost:    allowedHost,
		Environment:    env,
		SentryDSN:      getEnv("SENTRY_DSN", ""),

		AuthProvider: strings.ToLower(getEnv("AUTH_PROVIDER", AuthProviderFirebase)),

		AudioStorage:        strings.ToLower(getEnv("AUDIO_STORAGE", "")),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		S3Region:            getEnv("S3_REGION", "us-east-1"),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3AccessKey:         getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:         getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:          getEnv("S3_ENDPOINT", ""),
		S3PublicURL:         getEnv("S3_PUBLIC_URL", ""),

		ShutdownTimeout: shutdown,
	}

	switch cfg.AuthProvider {
	case AuthProviderFirebase:
		projectID, err := firebaseProjectID()
		if err != nil {
			return nil, err
		}
		cfg.FirebaseProjectID = projectID
	case AuthProviderSession:
		if cfg.RedisURI == "" {
			return nil, fmt.Errorf("AUTH_PROVIDER=session requires REDIS_URI")
		}
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider)
	}

	switch cfg.AudioStorage {
	case "", AudioStorageCloudinary, AudioStorageS3:
	default:
		return nil, fmt.Errorf("unknown AUDIO_STORAGE %q", cfg.AudioStorage)
	}

	return cfg, nil
}

// firebaseProjectID resolves the project whose ID tokens are accepted: FIREBASE_PROJECT_ID,
// else the project_id of the service account file or base64 blob.
func firebaseProjectID() (string, error) {
	if id := getEnv("FIREBASE_PROJECT_ID", ""); id != "" {
		return id, nil
	}

	var raw []byte
	if path := getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read firebase service account: %w", err)
		}
		raw = b
	} else if encoded := getEnv("FIREBASE_SERVICE_ACCOUNT_BASE64", ""); encoded != "" {
		b, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return "", fmt.Errorf("decode FIREBASE_SERVICE_ACCOUNT_BASE64: %w", err)
		}
		raw = b
	} else {
		return "", fmt.Errorf("no Firebase project configured: set FIREBASE_PROJECT_ID or a service account")
	}

	var account struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(raw, &account); err != nil {
		return "", fmt.Errorf("parse firebase service account: %w", err)
	}
	if account.ProjectID == "" {
		return "", fmt.Errorf("firebase service account has no project_id")
	}
	return account.ProjectID, nil
}

// hostname strips scheme, path and port from a URL-ish host string.
func hostname(host string) string {
	for _, prefix := range []string{"https://", "http://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return strings.TrimSpace(host)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
