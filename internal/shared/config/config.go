package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"filemanager-backend/internal/shared/telemetry"
)

// Object store backends.
const (
	StoreLocal = "local"
	StoreS3    = "s3"
	StoreGCS   = "gcs"
)

var defaultFileTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"text/plain",
	"text/csv",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"audio/mpeg",
	"video/mp4",
}

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	LocalPublicURL  string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3Endpoint      string
	SSEKMSKeyID     string
	GCSBucket       string
	GCSPrefix       string
	DatabaseURL     string
	PolicyFile      string
	Files           FileLimits
	Images          ImageLimits
	RateLimit       RateLimits
}

// FileLimits bounds file uploads and listings.
type FileLimits struct {
	MaxByteSize int64
	Count       int
	Types       []string
	QuotaBytes  int64
	PageMaxSize int
}

// ImageLimits bounds image uploads.
type ImageLimits struct {
	MaxByteSize int64
}

// RateLimits configures per-owner token buckets. A zero rate disables a group.
type RateLimits struct {
	DefaultRPS   float64
	DefaultBurst int
	UploadRPS    float64
	UploadBurst  int
}

// Load reads configuration from environment variables, an optional YAML policy
// file, and built-in defaults, in that order of precedence.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", StoreLocal)),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		LocalPublicURL:  getEnv("LOCAL_PUBLIC_URL", ""),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		GCSBucket:       getEnv("GCS_BUCKET", ""),
		GCSPrefix:       getEnv("GCS_PREFIX", ""),
		DatabaseURL:     dbURL,
		PolicyFile:      getEnv("POLICY_FILE", ""),
		Files: FileLimits{
			MaxByteSize: 20 << 20,
			Count:       5,
			Types:       append([]string(nil), defaultFileTypes...),
			QuotaBytes:  100 << 20,
			PageMaxSize: 250,
		},
		Images: ImageLimits{
			MaxByteSize: 5 << 20,
		},
		RateLimit: RateLimits{
			DefaultRPS:   20,
			DefaultBurst: 40,
			UploadRPS:    2,
			UploadBurst:  5,
		},
	}

	if cfg.PolicyFile != "" {
		overlay, err := loadPolicyFile(cfg.PolicyFile)
		if err != nil {
			return Config{}, err
		}
		overlay.apply(&cfg)
	}
	if err := applyEnvLimits(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvLimits(cfg *Config) error {
	var err error
	if cfg.Files.MaxByteSize, err = envInt64("FILE_MAX_BYTE_SIZE", cfg.Files.MaxByteSize); err != nil {
		return err
	}
	if cfg.Files.Count, err = envInt("FILE_COUNT", cfg.Files.Count); err != nil {
		return err
	}
	if raw := os.Getenv("FILE_TYPES"); raw != "" {
		cfg.Files.Types = splitAndTrim(raw)
	}
	if cfg.Files.QuotaBytes, err = envInt64("QUOTA_BYTES", cfg.Files.QuotaBytes); err != nil {
		return err
	}
	if cfg.Files.PageMaxSize, err = envInt("PAGE_MAX_SIZE", cfg.Files.PageMaxSize); err != nil {
		return err
	}
	if cfg.Images.MaxByteSize, err = envInt64("IMAGE_MAX_BYTE_SIZE", cfg.Images.MaxByteSize); err != nil {
		return err
	}
	if cfg.RateLimit.DefaultRPS, err = envFloat("RATE_LIMIT_RPS", cfg.RateLimit.DefaultRPS); err != nil {
		return err
	}
	if cfg.RateLimit.DefaultBurst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.DefaultBurst); err != nil {
		return err
	}
	if cfg.RateLimit.UploadRPS, err = envFloat("RATE_LIMIT_UPLOAD_RPS", cfg.RateLimit.UploadRPS); err != nil {
		return err
	}
	if cfg.RateLimit.UploadBurst, err = envInt("RATE_LIMIT_UPLOAD_BURST", cfg.RateLimit.UploadBurst); err != nil {
		return err
	}
	return nil
}

func (c Config) validate() error {
	switch {
	case c.Files.MaxByteSize <= 0:
		return fmt.Errorf("config: file max byte size must be positive")
	case c.Files.Count <= 0:
		return fmt.Errorf("config: file count must be positive")
	case c.Files.PageMaxSize <= 0:
		return fmt.Errorf("config: page max size must be positive")
	case c.Images.MaxByteSize <= 0:
		return fmt.Errorf("config: image max byte size must be positive")
	case c.ObjectStoreType == StoreS3 && c.S3Bucket == "":
		return fmt.Errorf("config: S3_BUCKET is required for the s3 object store")
	case c.ObjectStoreType == StoreGCS && c.GCSBucket == "":
		return fmt.Errorf("config: GCS_BUCKET is required for the gcs object store")
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func envInt64(key string, def int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func envInt(key string, def int) (int, error) {
	v, err := envInt64(key, int64(def))
	return int(v), err
}

func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
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
	case StoreS3:
		return StoreS3
	case StoreGCS:
		return StoreGCS
	default:
		return StoreLocal
	}
}
