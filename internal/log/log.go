// Package log is the process-wide structured logger, backed by zap.
package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	atomicLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	base        *zap.Logger
	sugar       *zap.SugaredLogger
	sink        string
)

func init() {
	logger, err := build("")
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	base = logger
	sugar = base.Sugar()
}

// build creates a console logger writing to file, or to stderr when file is
// empty. Stdout is left to command output.
func build(file string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = atomicLevel
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if file != "" {
		cfg.Encoding = "json"
		cfg.EncoderConfig = zap.NewProductionEncoderConfig()
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	return cfg.Build()
}

// Configure sets the level by name and sends output to file, or back to
// stderr when file is empty.
func Configure(level, file string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	atomicLevel.SetLevel(lvl)

	if file == sink {
		return nil
	}

	logger, err := build(file)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", file, err)
	}
	_ = base.Sync()
	base = logger
	sugar = base.Sugar()
	sink = file
	return nil
}

// ParseLevel maps a level name to a zap level. Empty means warn.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "warn", "warning":
		return zapcore.WarnLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.WarnLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level zapcore.Level) {
	atomicLevel.SetLevel(level)
}

func Sync() {
	_ = base.Sync()
}

func Debug(format string, args ...any) {
	sugar.Debugf(format, args...)
}

func Info(format string, args ...any) {
	sugar.Infof(format, args...)
}

func Warn(format string, args ...any) {
	sugar.Warnf(format, args...)
}

func Error(format string, args ...any) {
	sugar.Errorf(format, args...)
}
