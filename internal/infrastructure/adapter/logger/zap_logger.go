package logger

import (
	"sync/atomic"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements the Logger interface using Zap
type ZapLogger struct {
	logger *zap.Logger
	atom   zap.AtomicLevel
	level  atomic.Int32
}

// NewZapLogger creates a zap logger: JSON in production, colored console otherwise
func NewZapLogger(isProduction bool, level core.LogLevel) core.Logger {
	var cfg zap.Config
	if isProduction {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"

	zapLogger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	l := &ZapLogger{logger: zapLogger, atom: cfg.Level}
	l.SetLevel(level)
	return l
}

// NewZapLoggerFromCore wraps an existing zap core, used by tests to observe output
func NewZapLoggerFromCore(zapCore zapcore.Core, level core.LogLevel) core.Logger {
	atom := zap.NewAtomicLevel()
	l := &ZapLogger{
		logger: zap.New(zapCore),
		atom:   atom,
	}
	l.SetLevel(level)
	return l
}

// SetLevel sets the minimum log level
func (l *ZapLogger) SetLevel(level core.LogLevel) {
	l.level.Store(int32(level))
	l.atom.SetLevel(toZapLevel(level))
}

// GetLevel gets the current log level
func (l *ZapLogger) GetLevel() core.LogLevel {
	return core.LogLevel(l.level.Load())
}

func toZapLevel(level core.LogLevel) zapcore.Level {
	switch level {
	case core.LogLevelDebug:
		return zap.DebugLevel
	case core.LogLevelWarn:
		return zap.WarnLevel
	case core.LogLevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// mapToZapFields converts a map of fields to zap fields
func mapToZapFields(fields map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

func (l *ZapLogger) enabled(level core.LogLevel) bool {
	return l.GetLevel() <= level
}

// Debug logs debug messages
func (l *ZapLogger) Debug(message string, fields map[string]any) {
	if l.enabled(core.LogLevelDebug) {
		l.logger.Debug(message, mapToZapFields(fields)...)
	}
}

// Info logs informational messages
func (l *ZapLogger) Info(message string, fields map[string]any) {
	if l.enabled(core.LogLevelInfo) {
		l.logger.Info(message, mapToZapFields(fields)...)
	}
}

// Warn logs warning messages
func (l *ZapLogger) Warn(message string, fields map[string]any) {
	if l.enabled(core.LogLevelWarn) {
		l.logger.Warn(message, mapToZapFields(fields)...)
	}
}

// Error logs error messages
func (l *ZapLogger) Error(message string, fields map[string]any) {
	l.logger.Error(message, mapToZapFields(fields)...)
}

// Flush ensures all buffered logs are written
func (l *ZapLogger) Flush() error {
	return l.logger.Sync()
}
