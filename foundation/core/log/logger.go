// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the main Logger type that provides structured logging
//              with contextual fields. Entries are encoded and written by a
//              zap core; the foundation API (Fields, WithField, levels) stays
//              the same for callers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-18 v0.2.0: zap backend, dropped async worker and custom formatters

package log

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
)

// Fields carries structured context for a log entry
type Fields map[string]interface{}

// Format selects the zap encoder
type Format int

const (
	// FormatJSON outputs one JSON object per entry
	FormatJSON Format = iota

	// FormatText outputs zap's tab separated console encoding
	FormatText
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a log format
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return FormatJSON, nil
	case "text", "console":
		return FormatText, nil
	default:
		return FormatText, &ParseError{Input: format, Type: "format"}
	}
}

// Logger represents a structured logger with contextual information
type Logger struct {
	core  zapcore.Core
	level zap.AtomicLevel
	name  string

	contextFields Fields
	correlationID string

	mutex sync.RWMutex
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates a new logger with default configuration
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel(), Format: FormatText})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	var encoder zapcore.Encoder
	if config.Format == FormatJSON {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	level := zap.NewAtomicLevelAt(config.Level.zap())
	enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l == zapAuditLevel || level.Enabled(l)
	})

	return &Logger{
		core:          zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(output)), enabler),
		level:         level,
		name:          config.Name,
		contextFields: make(Fields),
	}
}

// WithName returns a copy of the logger with the given name
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField returns a copy of the logger carrying an extra context field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy of the logger carrying extra context fields
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// WithCorrelationID tags every entry of the returned logger with a run id
func (l *Logger) WithCorrelationID(correlationID string) *Logger {
	clone := l.clone()
	clone.correlationID = correlationID
	return clone
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// Audit logs an audit level message (always logged regardless of level)
func (l *Logger) Audit(message string, fields ...Fields) {
	l.log(LevelAudit, message, nil, fields...)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs an error, using code, severity and details of foundation errors
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	mdwErr, ok := err.(*mdwerror.Error)
	if !ok {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     string(mdwErr.Code()),
		"error_severity": mdwErr.Severity().String(),
	}
	for k, v := range mdwErr.Details() {
		fields["error_"+k] = v
	}

	level := LevelError
	switch mdwErr.Severity() {
	case mdwerror.SeverityLow:
		level = LevelInfo
	case mdwerror.SeverityMedium:
		level = LevelWarn
	}
	l.log(level, err.Error(), err, fields)
}

// StartTimer starts a timer whose Stop logs the elapsed time at debug level
func (l *Logger) StartTimer(operation string) *Timer {
	return &Timer{logger: l, operation: operation, start: time.Now()}
}

// IsLevelEnabled reports whether messages at level would be written
func (l *Logger) IsLevelEnabled(level Level) bool {
	return l.core.Enabled(level.zap())
}

// GetLevel returns the minimum level
func (l *Logger) GetLevel() Level {
	switch l.level.Level() {
	case zapTraceLevel:
		return LevelTrace
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.InfoLevel:
		return LevelInfo
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.ErrorLevel:
		return LevelError
	default:
		return LevelFatal
	}
}

// SetLevel changes the minimum level of this logger and all its copies
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zap())
}

// Sync flushes buffered output
func (l *Logger) Sync() error {
	return l.core.Sync()
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	entry := zapcore.Entry{
		Level:      level.zap(),
		Time:       time.Now(),
		LoggerName: l.name,
		Message:    message,
	}
	checked := l.core.Check(entry, nil)
	if checked == nil {
		return
	}

	l.mutex.RLock()
	merged := make(Fields, len(l.contextFields))
	for k, v := range l.contextFields {
		merged[k] = v
	}
	correlationID := l.correlationID
	l.mutex.RUnlock()

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

	zfields := make([]zapcore.Field, 0, len(keys)+2)
	if correlationID != "" {
		zfields = append(zfields, zap.String("correlation_id", correlationID))
	}
	for _, k := range keys {
		zfields = append(zfields, zap.Any(k, merged[k]))
	}
	if err != nil {
		zfields = append(zfields, zap.Error(err))
	}
	checked.Write(zfields...)
}

func (l *Logger) clone() *Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	fields := make(Fields, len(l.contextFields))
	for k, v := range l.contextFields {
		fields[k] = v
	}
	return &Logger{
		core:          l.core,
		level:         l.level,
		name:          l.name,
		contextFields: fields,
		correlationID: l.correlationID,
	}
}

// Timer measures one operation
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
}

// Stop logs the elapsed time and returns it
func (t *Timer) Stop(fields ...Fields) time.Duration {
	elapsed := time.Since(t.start)
	merged := Fields{"operation": t.operation, "duration": elapsed}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	t.logger.Debug("operation completed", merged)
	return elapsed
}

var (
	defaultLogger = New()
	defaultMutex  sync.RWMutex
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMutex.RLock()
	defer defaultMutex.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	defaultLogger = logger
}
