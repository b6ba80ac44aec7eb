// Package logger is a thin structured logging facade over zap.
package logger

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields carries structured key/value pairs attached to a log line
type Fields map[string]interface{}

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init configures the global logger. env "production" selects the JSON encoder.
func Init(level, env string) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set replaces the underlying zap logger, mostly useful in tests
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

// L returns the underlying zap logger
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered log entries
func Sync() error {
	return L().Sync()
}

// WithError wraps err into Fields under the "error" key
func WithError(err error) Fields {
	if err == nil {
		return Fields{}
	}
	return Fields{"error": err.Error()}
}

func Debug(msg string, fields ...Fields) { L().Debug(msg, toZap(fields)...) }
func Info(msg string, fields ...Fields)  { L().Info(msg, toZap(fields)...) }
func Warn(msg string, fields ...Fields)  { L().Warn(msg, toZap(fields)...) }
func Error(msg string, fields ...Fields) { L().Error(msg, toZap(fields)...) }

// toZap merges all field sets; later keys win. Keys are sorted so output is stable.
func toZap(fields []Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	merged := Fields{}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, merged[k]))
	}
	return out
}
