// Package logger builds the zap logger the reporters write to. Output
// goes to a per-day file; stdout stays clean for bar records.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to <dir>/YYYY-MM-DD.log, with warnings
// and errors mirrored to stderr. With verbose set, everything is
// mirrored. An empty dir keeps only the stderr core.
func New(dir string, verbose bool) (*zap.Logger, error) {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleLevel := zapcore.WarnLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}
	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(os.Stderr),
		consoleLevel,
	)

	if dir == "" {
		return zap.New(console), nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	// One file per calendar day; lumberjack caps its size.
	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, time.Now().Format("2006-01-02")+".log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
	})
	fileCore := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), file, zapcore.DebugLevel)

	return zap.New(zapcore.NewTee(console, fileCore)), nil
}
