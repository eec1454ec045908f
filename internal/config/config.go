package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID      string
	Port           string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	StoreTimeout   time.Duration
}

func Load() Config {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	// FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT selects the Firestore project
	projectID := getenv("FIREBASE_PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	port := getenv("PORT", "8080")
	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	logLevel := getenv("LOG_LEVEL", "info")
	logFormat := getenv("LOG_FORMAT", "text")

	storeTimeout := 10 * time.Second
	if raw := getenv("STORE_TIMEOUT_SECONDS", ""); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			storeTimeout = time.Duration(secs) * time.Second
		}
	}

	allowed := []string{}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	return Config{
		ProjectID:      projectID,
		Port:           port,
		AllowedOrigins: allowed,
		LogLevel:       logLevel,
		LogFormat:      logFormat,
		StoreTimeout:   storeTimeout,
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
