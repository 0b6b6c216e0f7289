package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	Env             string
	DBConnString    string
	ShutdownTimeout time.Duration
	PublicDir       string
	UploadS3Bucket  string
	AWSRegion       string
	AssetsBaseURL   string
	CatalogCSV      string
	CORSOrigins     []string
}

// FromEnv builds Config with defaults, overridden by environment variables.
// An empty DB_DSN keeps drafts in memory.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		Env:             envOrDefault("APP_ENV", "production"),
		DBConnString:    envOrDefault("DB_DSN", ""),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		PublicDir:       envOrDefault("PUBLIC_DIR", "public"),
		UploadS3Bucket:  envOrDefault("UPLOAD_S3_BUCKET", ""),
		AWSRegion:       envOrDefault("AWS_REGION", envOrDefault("AWS_DEFAULT_REGION", "eu-west-3")),
		AssetsBaseURL:   envOrDefault("ASSETS_BASE_URL", ""),
		CatalogCSV:      envOrDefault("CATALOG_CSV", ""),
		CORSOrigins:     envList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
