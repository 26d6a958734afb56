package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var instance *zap.Logger = func() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return log
}()

// Init replaces the process logger with a production logger at the given level.
// An empty level keeps "info".
func Init(level string) error {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	instance = log
	return nil
}

func set(log *zap.Logger) {
	instance = log
}

// Get returns the process logger, for wiring into libraries that take one.
func Get() *zap.Logger {
	return instance
}

func Error(msg string, err error, fields ...zap.Field) {
	instance.Error(msg, append(fields, zap.Error(err))...)
}

func Warn(msg string, fields ...zap.Field) {
	instance.Warn(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	instance.Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	instance.Debug(msg, fields...)
}

func Sync() {
	_ = instance.Sync()
}
