package jsonlog

import (
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
)

// Level type to represent the severity level for a log entry
type Level int8

const (
	LevelInfo Level = iota
	LevelError
	LevelFatal
	LevelOff
)

// String return human friendly string for the severity level
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return ""
	}
}

// ParseLevel maps a case-insensitive level name onto a Level. Unknown names
// fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "ERROR":
		return LevelError
	case "FATAL":
		return LevelFatal
	case "OFF":
		return LevelOff
	default:
		return LevelInfo
	}
}

func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.Disabled
	}
}

// Logger writes one JSON object per entry to the output destination, dropping
// entries below the minimum severity level. zerolog serializes the writes.
type Logger struct {
	zl       zerolog.Logger
	minLevel Level
	exit     func(code int)
}

// NewLogger return a new Logger instance which writes log entries at or above
// a minimum severity level to a specific output destination
func NewLogger(out io.Writer, minLevel Level) *Logger {
	zl := zerolog.New(zerolog.SyncWriter(out)).
		Level(minLevel.zerologLevel()).
		With().
		Timestamp().
		Logger()

	return &Logger{
		zl:       zl,
		minLevel: minLevel,
		exit:     os.Exit,
	}
}

// PrintInfo writes message and properties with LevelInfo severity.
func (l *Logger) PrintInfo(message string, properties map[string]string) {
	l.print(LevelInfo, message, properties)
}

// PrintError writes err and properties with LevelError severity, including a
// stack trace.
func (l *Logger) PrintError(err error, properties map[string]string) {
	l.print(LevelError, err.Error(), properties)
}

// PrintFatal writes err and properties with LevelFatal severity and then
// terminates the process.
func (l *Logger) PrintFatal(err error, properties map[string]string) {
	l.print(LevelFatal, err.Error(), properties)
	l.exit(1)
}

func (l *Logger) print(level Level, message string, properties map[string]string) {
	if level < l.minLevel || level >= LevelOff {
		return
	}

	// WithLevel rather than Fatal() so that exiting stays under our control.
	ev := l.zl.WithLevel(level.zerologLevel())

	if len(properties) > 0 {
		dict := zerolog.Dict()
		for k, v := range properties {
			dict = dict.Str(k, v)
		}
		ev = ev.Dict("properties", dict)
	}

	if level >= LevelError {
		ev = ev.Str("trace", string(debug.Stack()))
	}

	ev.Msg(message)
}

// Write lets the Logger act as the http.Server error log. Entries are
// recorded at LevelError.
func (l *Logger) Write(message []byte) (n int, err error) {
	l.print(LevelError, strings.TrimSpace(string(message)), nil)
	return len(message), nil
}
