package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the application logger.
// Console output starts at the given level; the log file always receives debug entries,
// so the file holds the full trace while the console stays readable.
func New(level, file string) (*zap.Logger, error) {
	consoleLevel, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		consoleLevel = zapcore.InfoLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stdout),
		consoleLevel,
	)

	if file == "" {
		return zap.New(consoleCore), nil
	}

	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	logFile, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileCfg),
		zapcore.AddSync(logFile),
		zapcore.DebugLevel,
	)

	logger := zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller())
	logger.Debug("Session started", zap.Int("pid", os.Getpid()))
	return logger, nil
}
