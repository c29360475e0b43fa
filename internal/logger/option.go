package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions describes a rotated log file that mirrors console output as JSON.
type FileOptions struct {
	// Path is the log file location. An empty path disables the file sink.
	Path string
	// MaxSizeMB is the size in megabytes that triggers rotation.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int
	// MaxAgeDays is the number of days to keep rotated files.
	MaxAgeDays int
}

const (
	// DefaultMaxSizeMB is the rotation size used when FileOptions.MaxSizeMB is unset.
	DefaultMaxSizeMB = 10
	// DefaultMaxBackups is the number of kept files used when FileOptions.MaxBackups is unset.
	DefaultMaxBackups = 3
)

// WithRotatingFile is an option that tees every entry into a rotated JSON log file.
// It returns a no-op option when opts.Path is empty.
//
//nolint:ireturn,nolintlint // Returning zap.Option is intended for zap integration.
func WithRotatingFile(opts FileOptions, level zapcore.LevelEnabler) zap.Option {
	if opts.Path == "" {
		return zap.WrapCore(func(core zapcore.Core) zapcore.Core { return core })
	}

	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = DefaultMaxSizeMB
	}

	if opts.MaxBackups <= 0 {
		opts.MaxBackups = DefaultMaxBackups
	}

	if level == nil {
		level = defaultLevel
	}

	// lumberjack serializes writes, so no extra locking is needed.
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	})

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, level)

	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	})
}

// Configure applies a textual level and an optional log file to the global logger.
// Unknown level names keep the current level and are reported as false.
func Configure(levelName string, file FileOptions) bool {
	ok := true

	if levelName != "" {
		var lvl zapcore.Level

		lvl, ok = ParseLogLevel(levelName)
		if ok {
			SetLevel(lvl)
		}
	}

	if file.Path != "" {
		SetLogger(New(defaultLevel, WithRotatingFile(file, defaultLevel)))
	}

	return ok
}
