// Package log provides structured, colored logging for kardano.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers for different parts of the system.
var (
	Account  zerolog.Logger
	Wallet   zerolog.Logger
	Keystore zerolog.Logger
	Storage  zerolog.Logger
	Book     zerolog.Logger
	CLI      zerolog.Logger
)

// Console output goes to stderr so command results on stdout stay clean.
var consoleOut io.Writer = os.Stderr

func init() {
	Logger = NewConsoleLogger(consoleOut, "warn")
	initComponentLoggers()
}

// Init configures the global logger. When file is non-empty, logs are written
// to the console (colored or JSON) and to the file (always JSON).
func Init(level string, jsonOutput bool, file string) error {
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}

		var console io.Writer = consoleOut
		if !jsonOutput {
			console = zerolog.ConsoleWriter{Out: consoleOut, TimeFormat: "15:04:05"}
		}
		Logger = zerolog.New(zerolog.MultiLevelWriter(console, f)).
			Level(ParseLevel(level)).
			With().
			Timestamp().
			Logger()
	} else if jsonOutput {
		Logger = NewJSONLogger(consoleOut, level)
	} else {
		Logger = NewConsoleLogger(consoleOut, level)
	}

	initComponentLoggers()
	return nil
}

// NewConsoleLogger creates a colored console logger.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(output).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewJSONLogger creates a structured JSON logger.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a level name to a zerolog.Level. Unknown names map to
// info.
func ParseLevel(level string) zerolog.Level {
	if l, ok := LookupLevel(level); ok {
		return l
	}
	return zerolog.InfoLevel
}

// LookupLevel maps a level name to its zerolog level and reports whether the
// name is known. Names are case-insensitive.
func LookupLevel(level string) (zerolog.Level, bool) {
	l, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	return l, ok
}

var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"disabled": zerolog.Disabled,
	"off":      zerolog.Disabled,
}

func initComponentLoggers() {
	Account = WithComponent("account")
	Wallet = WithComponent("wallet")
	Keystore = WithComponent("keystore")
	Storage = WithComponent("storage")
	Book = WithComponent("book")
	CLI = WithComponent("cli")
}

// WithComponent returns a logger with a component field.
func WithComponent(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

// WithNetwork returns a logger with a network field.
func WithNetwork(network string) zerolog.Logger {
	return Logger.With().Str("network", network).Logger()
}

// Benchmark returns a func that logs the elapsed time of an operation at
// debug level.
func Benchmark(name string) func() {
	start := time.Now()
	return func() {
		Logger.Debug().
			Str("operation", name).
			Dur("duration", time.Since(start)).
			Msg("benchmark")
	}
}
