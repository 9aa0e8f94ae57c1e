package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Options configures the process-wide log sinks
type Options struct {
	Level      string // debug|info|warn|error
	Format     string // text|json
	Console    bool   // write to stderr
	File       string // rotated JSON log file, empty disables
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger provides component-scoped logging with verbose support
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	sinks          *sinks
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// sinks holds the console and file loggers shared by every component logger
type sinks struct {
	mu      sync.RWMutex
	console *logrus.Logger
	file    *logrus.Logger
	closer  io.Closer
}

var defaultSinks = newDefaultSinks()

func newDefaultSinks() *sinks {
	console := logrus.New()
	console.SetOutput(os.Stderr)
	console.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	console.SetLevel(logrus.InfoLevel)
	return &sinks{console: console}
}

// Configure replaces the process-wide sinks. It is safe to call more than once;
// a previously opened log file is closed.
func Configure(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	console := logrus.New()
	console.SetLevel(level)
	console.SetFormatter(consoleFormatter(opts.Format))
	if opts.Console {
		console.SetOutput(os.Stderr)
	} else {
		console.SetOutput(io.Discard)
	}

	var (
		file   *logrus.Logger
		closer io.Closer
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		file = logrus.New()
		file.SetLevel(level)
		file.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		file.SetOutput(rotator)
		closer = rotator
	}

	defaultSinks.mu.Lock()
	old := defaultSinks.closer
	defaultSinks.console = console
	defaultSinks.file = file
	defaultSinks.closer = closer
	defaultSinks.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Close flushes and closes the log file, if any
func Close() error {
	defaultSinks.mu.Lock()
	defer defaultSinks.mu.Unlock()

	if defaultSinks.closer == nil {
		return nil
	}
	err := defaultSinks.closer.Close()
	defaultSinks.closer = nil
	defaultSinks.file = nil
	return err
}

// New creates a new logger instance
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		sinks:          defaultSinks,
	}
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// NewWithLogrus creates a logger writing only to l. Useful for tests and embedding.
func NewWithLogrus(component string, verboseChecker VerboseChecker, l *logrus.Logger) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		sinks:          &sinks{console: l},
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewWithLogrus("discard", nil, l)
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		sinks:          l.sinks,
	}
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.log(logrus.DebugLevel, msg, nil, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.log(logrus.InfoLevel, msg, nil, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(logrus.WarnLevel, msg, nil, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(logrus.ErrorLevel, msg, nil, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.isVerbose() {
		l.log(logrus.DebugLevel, msg, fields, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.isVerbose() {
		l.log(logrus.InfoLevel, msg, fields, args...)
	}
}

// WarnWithFields logs warning message with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.log(logrus.WarnLevel, msg, fields, args...)
}

// ErrorWithFields logs error message with structured fields
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.log(logrus.ErrorLevel, msg, fields, args...)
}

func (l *Logger) isVerbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// log writes to every configured sink
func (l *Logger) log(level logrus.Level, msg string, fields []Field, args ...interface{}) {
	component := l.component
	if component == "" {
		component = "main"
	}

	data := logrus.Fields{"component": component}
	for _, field := range fields {
		data[field.Key] = field.Value
	}

	formatted := msg
	if len(args) > 0 {
		formatted = fmt.Sprintf(msg, args...)
	}

	l.sinks.mu.RLock()
	console, file := l.sinks.console, l.sinks.file
	l.sinks.mu.RUnlock()

	if console != nil {
		console.WithFields(data).Log(level, formatted)
	}
	if file != nil {
		file.WithFields(data).Log(level, formatted)
	}
}

func consoleFormatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{TimestampFormat: time.RFC3339}
	}
	return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"}
}

func parseLevel(level string) (logrus.Level, error) {
	if level == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
