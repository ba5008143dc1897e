package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel defines the severity level for log events.
type LogLevel string

const (
	// DebugLevel indicates detailed tracing information, typically only useful during development.
	DebugLevel LogLevel = "debug"
	// InfoLevel indicates general operational information.
	InfoLevel LogLevel = "info"
	// WarnLevel indicates potentially harmful situations or unexpected events.
	WarnLevel LogLevel = "warn"
	// ErrorLevel indicates error events that might still allow the application to continue running.
	ErrorLevel LogLevel = "error"
	// FatalLevel indicates severe error events that will presumably lead the application to abort.
	FatalLevel LogLevel = "fatal"
)

// ParseLevel converts a level name into a LogLevel. Matching is case-insensitive.
func ParseLevel(s string) (LogLevel, error) {
	switch l := LogLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return l, nil
	case "":
		return InfoLevel, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Format selects how log events are rendered.
type Format string

const (
	// BareFormat writes only the message, one event per line.
	BareFormat Format = "bare"
	// ConsoleFormat writes human friendly lines with time, level and fields.
	ConsoleFormat Format = "console"
	// JSONFormat writes one JSON object per event.
	JSONFormat Format = "json"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case BareFormat, ConsoleFormat, JSONFormat:
		return f, nil
	case "":
		return JSONFormat, nil
	default:
		return "", fmt.Errorf("unknown log format %q", s)
	}
}

// Config describes how to build a zerolog.Logger.
type Config struct {
	// Format defaults to JSONFormat.
	Format Format
	// Level defaults to InfoLevel.
	Level LogLevel
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	switch cfg.Format {
	case BareFormat:
		return NewBare(out).Level(cfg.Level.zerolog())
	case ConsoleFormat:
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).
			Level(cfg.Level.zerolog()).
			With().Timestamp().Logger()
	default:
		return zerolog.New(out).
			Level(cfg.Level.zerolog()).
			With().Timestamp().Logger()
	}
}

// NewBare returns an info level logger that writes only the event message to w,
// one line per event, with no timestamp or level prefix. Events pass through
// zerolog's JSON encoding, so invalid UTF-8 in a message is written as U+FFFD.
func NewBare(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
	}
	return zerolog.New(cw).Level(zerolog.InfoLevel)
}

// Init initializes the global logger provided by the zerolog library.
// With a zero Config it outputs JSON formatted logs to stderr with Unix timestamps.
// This should typically be called once at application startup.
func Init(cfgs ...Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	log.Logger = New(cfg)
}

// LogEvent represents the structure of a log entry, primarily used for understanding the JSON output.
// This struct itself is not directly used for logging via the exported functions.
type LogEvent struct {
	// Level is the severity level of the log event (e.g., "info", "error").
	Level LogLevel `json:"level"`
	// Message is the main human-readable log message.
	Message string `json:"message"`
	// Component indicates the part of the application that generated the log (e.g., "replay", "main").
	Component string `json:"component"`
	// Data contains optional additional structured key-value data associated with the log event.
	Data map[string]interface{} `json:"data,omitempty"`
}

// Log is the core logging function.
// It takes the level, message, component, and optional data, and logs it using the globally configured zerolog logger.
// Use the specific level functions (Debug, Info, Warn, Error, Fatal) instead of calling Log directly.
func Log(level LogLevel, message, component string, data map[string]interface{}) {
	logTo(log.Logger, level, message, component, data)
}

func logTo(base zerolog.Logger, level LogLevel, message, component string, data map[string]interface{}) {
	logger := base.With().
		Str("component", component).
		Fields(data).
		Logger()

	switch level {
	case DebugLevel:
		logger.Debug().Msg(message)
	case InfoLevel:
		logger.Info().Msg(message)
	case WarnLevel:
		logger.Warn().Msg(message)
	case ErrorLevel:
		logger.Error().Msg(message)
	case FatalLevel:
		logger.Fatal().Msg(message)
	}
}

// Debug logs a message at the Debug level with the specified component and optional data.
func Debug(message, component string, data map[string]interface{}) {
	Log(DebugLevel, message, component, data)
}

// Info logs a message at the Info level with the specified component and optional data.
func Info(message, component string, data map[string]interface{}) {
	Log(InfoLevel, message, component, data)
}

// Warn logs a message at the Warn level with the specified component and optional data.
func Warn(message, component string, data map[string]interface{}) {
	Log(WarnLevel, message, component, data)
}

// Error logs a message at the Error level with the specified component and optional data.
func Error(message, component string, data map[string]interface{}) {
	Log(ErrorLevel, message, component, data)
}

// Fatal logs a message at the Fatal level with the specified component and optional data,
// and then calls os.Exit(1).
func Fatal(message, component string, data map[string]interface{}) {
	Log(FatalLevel, message, component, data)
}
