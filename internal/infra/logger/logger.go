// internal/infra/logger/logger.go
package logger

import (
	"os"
	"strings"

	"medicine_reminder/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// New builds the application logger from configuration: JSON output in
// production-like environments, colored text in development.
func New(cfg *config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	switch strings.ToLower(cfg.Environment) {
	case "production", "staging":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	log.Debugf("Log level set to: %s", log.GetLevel().String())
	return log
}
