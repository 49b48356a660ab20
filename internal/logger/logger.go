package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger provides structured logging functionality
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a new structured logger writing JSON lines to output
func NewLogger(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	zl := zerolog.New(output).With().Timestamp().Logger().Level(parseLogLevel(level))

	return &Logger{zl: zl}
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "FATAL":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithFields returns a new log entry with a copy of the specified fields
func (l *Logger) WithFields(fields map[string]interface{}) *LogEntryBuilder {
	b := &LogEntryBuilder{logger: l}
	return b.WithFields(fields)
}

// WithField returns a new log entry with a single field
func (l *Logger) WithField(key string, value interface{}) *LogEntryBuilder {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithError returns a new log entry with an error field
func (l *Logger) WithError(err error) *LogEntryBuilder {
	return &LogEntryBuilder{
		logger: l,
		err:    err,
	}
}

func (l *Logger) Debug(message string) {
	l.log(zerolog.DebugLevel, message, nil, nil)
}

func (l *Logger) Info(message string) {
	l.log(zerolog.InfoLevel, message, nil, nil)
}

func (l *Logger) Warn(message string) {
	l.log(zerolog.WarnLevel, message, nil, nil)
}

func (l *Logger) Error(message string) {
	l.log(zerolog.ErrorLevel, message, nil, nil)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(message string) {
	l.log(zerolog.FatalLevel, message, nil, nil)
	os.Exit(1)
}

func (l *Logger) log(level zerolog.Level, message string, fields map[string]interface{}, err error) {
	event := l.zl.WithLevel(level)
	if event == nil {
		return
	}

	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	if err != nil {
		event = event.Err(err)
	}

	// Caller information for errors and above
	if level >= zerolog.ErrorLevel {
		event = event.Caller(3)
	}

	event.Msg(message)
}

// LogEntryBuilder helps build log entries with fields
type LogEntryBuilder struct {
	logger *Logger
	fields map[string]interface{}
	err    error
}

// WithField adds a field to the log entry
func (b *LogEntryBuilder) WithField(key string, value interface{}) *LogEntryBuilder {
	if b.fields == nil {
		b.fields = make(map[string]interface{})
	}
	b.fields[key] = value
	return b
}

// WithFields adds multiple fields to the log entry
func (b *LogEntryBuilder) WithFields(fields map[string]interface{}) *LogEntryBuilder {
	if b.fields == nil {
		b.fields = make(map[string]interface{})
	}
	for k, v := range fields {
		b.fields[k] = v
	}
	return b
}

// WithError adds an error to the log entry
func (b *LogEntryBuilder) WithError(err error) *LogEntryBuilder {
	b.err = err
	return b
}

func (b *LogEntryBuilder) Debug(message string) {
	b.logger.log(zerolog.DebugLevel, message, b.fields, b.err)
}

func (b *LogEntryBuilder) Info(message string) {
	b.logger.log(zerolog.InfoLevel, message, b.fields, b.err)
}

func (b *LogEntryBuilder) Warn(message string) {
	b.logger.log(zerolog.WarnLevel, message, b.fields, b.err)
}

func (b *LogEntryBuilder) Error(message string) {
	b.logger.log(zerolog.ErrorLevel, message, b.fields, b.err)
}

// Fatal logs a fatal message with fields and exits
func (b *LogEntryBuilder) Fatal(message string) {
	b.logger.log(zerolog.FatalLevel, message, b.fields, b.err)
	os.Exit(1)
}

// Log is the process-wide logger. It writes INFO and above to stdout until
// Initialize replaces it.
var Log = NewLogger("INFO", os.Stdout)

// Initialize replaces the global logger. Production output goes to
// logs/app.log when the directory can be created.
func Initialize(level, environment string) {
	var output io.Writer = os.Stdout

	if environment == "production" {
		if err := os.MkdirAll("logs", 0755); err == nil {
			if file, err := os.OpenFile("logs/app.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
				output = file
			}
		}
	}

	Log = NewLogger(level, output)
}
