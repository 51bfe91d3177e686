package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port  string
	Env   string
	Debug bool

	DatabaseURL string
	RedisURL    string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	PublicBaseURL   string

	ChatAPIURL    string
	ChatAPIToken  string
	WebhookSecret string

	GeminiAPIKey string
	GeminiModel  string

	RemoteRenderURL     string
	RenderTimeout       time.Duration
	UploadMaxAttempts   int
	UploadBackoffBase   time.Duration
	ConversationIdleTTL time.Duration
	SweepInterval       time.Duration
	RetentionPerOwner   int
	ArtifactTTL         time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:  getEnv("PORT", "8080"),
		Env:   env,
		Debug: getBool("DEBUG", false),

		DatabaseURL: dbURL,
		RedisURL:    os.Getenv("REDIS_URL"),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		ChatAPIURL:    getEnv("CHAT_API_URL", ""),
		ChatAPIToken:  getEnv("CHAT_API_TOKEN", ""),
		WebhookSecret: getEnv("WEBHOOK_SECRET", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),

		RemoteRenderURL:     getEnv("REMOTE_RENDER_URL", ""),
		RenderTimeout:       getDuration("RENDER_TIMEOUT", 30*time.Second),
		UploadMaxAttempts:   getInt("UPLOAD_MAX_ATTEMPTS", 3),
		UploadBackoffBase:   getDuration("UPLOAD_BACKOFF_BASE", 500*time.Millisecond),
		ConversationIdleTTL: getDuration("CONVERSATION_IDLE_TTL", 30*time.Minute),
		SweepInterval:       getDuration("SWEEP_INTERVAL", 10*time.Minute),
		RetentionPerOwner:   getInt("RETENTION_PER_OWNER", 10),
		ArtifactTTL:         getDuration("ARTIFACT_TTL", 30*24*time.Hour),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
