package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once sync.Once
	log  *zap.Logger
)

// New builds a zap logger for env. "development" logs human readable console output
// at debug level, anything else logs JSON at info level.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}
	return cfg.Build()
}

// L returns the process logger, building it from APP_ENV on first use.
func L() *zap.Logger {
	once.Do(func() {
		l, err := New(os.Getenv("APP_ENV"))
		if err != nil {
			l = zap.NewNop()
		}
		log = l
	})
	return log
}

// Named returns a child of the process logger for a component.
func Named(component string) *zap.Logger {
	return L().Named(component)
}
