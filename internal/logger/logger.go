package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// VerboseFunc adapts a plain function to VerboseChecker
type VerboseFunc func() bool

// IsVerbose calls f
func (f VerboseFunc) IsVerbose() bool {
	return f != nil && f()
}

// Logger provides component-scoped leveled logging with verbose support
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	writer         io.Writer
	mu             *sync.Mutex
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance writing to stderr
func New(component string, verboseChecker VerboseChecker) *Logger {
	return NewWithWriter(component, verboseChecker, os.Stderr)
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// NewWithWriter creates a logger that writes to w. The interactive UI uses
// this to send log lines to a file instead of the terminal.
func NewWithWriter(component string, verboseChecker VerboseChecker, w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		writer:         w,
		mu:             &sync.Mutex{},
	}
}

// Nop returns a logger that drops everything
func Nop() *Logger {
	return NewWithWriter("", nil, io.Discard)
}

// WithComponent creates a logger with a specific component name sharing the
// same writer
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		writer:         l.writer,
		mu:             l.mu,
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

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.logWithFields("DEBUG", msg, nil, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.logWithFields("INFO", msg, nil, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.logWithFields("WARN", msg, nil, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.logWithFields("ERROR", msg, nil, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.logWithFields("DEBUG", msg, fields, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.logWithFields("INFO", msg, fields, args...)
	}
}

// WarnWithFields logs a warning with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.logWithFields("WARN", msg, fields, args...)
}

// ErrorWithFields logs an error with structured fields
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.logWithFields("ERROR", msg, fields, args...)
}

// logWithFields formats and writes log message with structured fields
func (l *Logger) logWithFields(level, msg string, fields []Field, args ...interface{}) {
	if l == nil || l.writer == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	component := l.component
	if component == "" {
		component = "main"
	}

	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	fieldStrings := make([]string, 0, len(fields))
	for _, field := range fields {
		fieldStrings = append(fieldStrings, fmt.Sprintf("%s=%v", field.Key, field.Value))
	}

	var fieldsStr string
	if len(fieldStrings) > 0 {
		fieldsStr = fmt.Sprintf(" [%s]", strings.Join(fieldStrings, " "))
	}

	logLine := fmt.Sprintf("[%s] %s [%s] %s%s\n", timestamp, level, component, formattedMsg, fieldsStr)

	l.mu.Lock()
	defer l.mu.Unlock()
	// Nothing sensible to do if the log sink itself fails
	_, _ = io.WriteString(l.writer, logLine)
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

func Provider(name string) Field {
	return Field{Key: "provider", Value: name}
}

func Status(code int) Field {
	return Field{Key: "status", Value: code}
}
