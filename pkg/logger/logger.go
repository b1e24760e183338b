package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control where log output goes and how verbose it is
type Options struct {
	Debug bool
	// File is a log file or directory. Empty means stderr.
	File string
}

const defaultLogName = "mapper.log"

var log = zap.NewNop().Sugar()

// Init builds the process-wide logger. The console is shared with the
// interactive menu so only warnings and errors reach it unless debugging.
func Init(opts Options) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if opts.Debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else if opts.File != "" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	out := "stderr"
	if opts.File != "" {
		out = opts.File
		if info, err := os.Stat(opts.File); err == nil && info.IsDir() {
			out = filepath.Join(opts.File, defaultLogName)
		}
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	log = l.Sugar()
	return nil
}

// Set replaces the process-wide logger, mostly for tests
func Set(l *zap.Logger) {
	log = l.Sugar()
}

// With returns a child logger carrying the given key/value pairs
func With(args ...interface{}) *zap.SugaredLogger {
	return log.With(args...)
}

// Errorf logs an error message
func Errorf(format string, v ...interface{}) {
	log.Errorf(format, v...)
}

// Warnf logs a warning message
func Warnf(format string, v ...interface{}) {
	log.Warnf(format, v...)
}

// Infof logs an info message
func Infof(format string, v ...interface{}) {
	log.Infof(format, v...)
}

// Debugf logs a debug message
func Debugf(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = log.Sync()
}
