package firebase

import (
	"context"
	"os"

	"club-booking/backend/internal/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

func NewApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	// Prefer GOOGLE_APPLICATION_CREDENTIALS (service account json file path)
	// or FIREBASE_SERVICE_ACCOUNT_JSON (raw json content)
	opts := []option.ClientOption{}

	if json := getenv("FIREBASE_SERVICE_ACCOUNT_JSON", ""); json != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(json)))
	}

	appCfg := &firebase.Config{}
	if cfg.ProjectID != "" {
		appCfg.ProjectID = cfg.ProjectID
	}

	if len(opts) > 0 {
		return firebase.NewApp(ctx, appCfg, opts...)
	}
	return firebase.NewApp(ctx, appCfg)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
