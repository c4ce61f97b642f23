//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package logging wraps zap with per-module loggers for the SDK.
//
// Every SDK component obtains its logger through [GetLogger] and tags each
// message with a component ("actor") and an operation ("action"). Levels are
// managed per module via [UpdateLogLevels]; the encoder is JSON unless the
// LOG_FORMATTER environment variable is "text".
package logging

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a module-scoped wrapper around zap.Logger.
type Logger struct {
	mu     sync.RWMutex
	module string
	sugar  *zap.SugaredLogger
	level  zapcore.Level
	writer io.Writer
}

const (
	actorKey  = "actor"
	actionKey = "action"
	moduleKey = "module"
	defActor  = "sdk"
	defAction = "unk"
)

// newLogger creates an untracked logger. Applications call GetLogger.
func newLogger(module string) *Logger {
	l := &Logger{module: module, level: zapcore.InfoLevel}
	l.rebuild()
	return l
}

// rebuild recreates the zap core from the current level and writer. Callers
// must hold l.mu for writing, or own l exclusively.
func (l *Logger) rebuild() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	var encoder zapcore.Encoder
	switch os.Getenv("LOG_FORMATTER") {
	case "text":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var out io.Writer = os.Stderr
	if l.writer != nil {
		out = l.writer
	}

	options := []zap.Option{zap.AddCallerSkip(1)}
	if os.Getenv("LOG_REPORT_CALLER") != "" {
		options = append(options, zap.AddCaller())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), l.level)
	l.sugar = zap.New(core, options...).Sugar().With(zap.String(moduleKey, l.module))
}

// IsDebugEnabled returns true if the current logging level is debug or lower.
// Use it to guard debug output that is expensive to compute.
func (l *Logger) IsDebugEnabled() bool {
	return l.IsLevelEnabled(zapcore.DebugLevel)
}

// IsLevelEnabled checks if a level is enabled
func (l *Logger) IsLevelEnabled(level zapcore.Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level <= level
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level zapcore.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// Out returns the output writer; stderr unless SetOut was called.
func (l *Logger) Out() io.Writer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.writer != nil {
		return l.writer
	}
	return os.Stderr
}

// SetOut redirects output to w (for tests and the CLI).
func (l *Logger) SetOut(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
	l.rebuild()
}

func (l *Logger) with(actorID, actionID string) *zap.SugaredLogger {
	l.mu.RLock()
	s := l.sugar
	l.mu.RUnlock()
	return s.With(zap.String(actorKey, actorID), zap.String(actionKey, actionID))
}

// Debug log debug message
func (l *Logger) Debug(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Debug(args...)
}

// Debugf log debug message
func (l *Logger) Debugf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Debugf(format, args...)
}

// Info logs info message
func (l *Logger) Info(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Info(args...)
}

// Infof logs info message
func (l *Logger) Infof(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Infof(format, args...)
}

// Warn logs warning message
func (l *Logger) Warn(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Warn(args...)
}

// Warnf logs warning message
func (l *Logger) Warnf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Warnf(format, args...)
}

// Warnw logs a warning with structured key/value pairs
func (l *Logger) Warnw(actorID, actionID string, msg string, keysAndValues ...interface{}) {
	l.with(actorID, actionID).Warnw(msg, keysAndValues...)
}

// Error logs error message
func (l *Logger) Error(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Error(args...)
}

// Errorf logs error message
func (l *Logger) Errorf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Errorf(format, args...)
}

// SysDebugf logs debug message with default actor and action
func (l *Logger) SysDebugf(format string, args ...interface{}) {
	l.Debugf(defActor, defAction, format, args...)
}

// SysInfof logs info message with default actor and action
func (l *Logger) SysInfof(format string, args ...interface{}) {
	l.Infof(defActor, defAction, format, args...)
}

// SysWarnf logs warning message with default actor and action
func (l *Logger) SysWarnf(format string, args ...interface{}) {
	l.Warnf(defActor, defAction, format, args...)
}

// SysErrorf logs error message with default actor and action
func (l *Logger) SysErrorf(format string, args ...interface{}) {
	l.Errorf(defActor, defAction, format, args...)
}
