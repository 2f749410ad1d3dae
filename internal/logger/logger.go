// Package logger builds the application's zap logger.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a production JSON logger for mode "prod"/"production" and a
// human-readable development logger otherwise.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
