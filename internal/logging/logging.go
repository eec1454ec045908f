package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"club-booking/backend/internal/config"
)

// New builds the process-wide logger from config. Level falls back to info
// on a bad LOG_LEVEL rather than failing startup.
func New(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("invalid log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
