package logger

import "go.uber.org/zap"

// New builds the application logger: JSON output, ISO8601 timestamps.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.DisableStacktrace = true
	return cfg.Build()
}
