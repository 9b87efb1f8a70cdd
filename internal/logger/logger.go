package logger

import (
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// New builds a JSON production logger at the given level ("debug", "info",
// "warn", "error"). An empty level means info.
func New(level string) (*zap.Logger, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}

	atomic, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomic

	lg, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}

	return lg, nil
}
