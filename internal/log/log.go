// Package log provides structured debug logging for the harness itself.
// It is entirely separate from the test report: log entries go to a file
// (and to pub/sub subscribers), never to the report sink. Logging is off
// unless enabled via the --debug flag or the XM_DEBUG environment variable.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/zyndor/xm/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatRun      Category = "run"      // Runner traversal and per-test outcomes
	CatFilter   Category = "filter"   // Filter parsing and admission decisions
	CatRegistry Category = "registry" // Test registration
	CatHistory  Category = "history"  // Run-history persistence
	CatConfig   Category = "config"   // Configuration loading/saving
	CatTrace    Category = "trace"    // Trace provider lifecycle
)

// Logger provides leveled, categorized logging with key=value fields.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the global logger, appending to the file at path.
// Returns a cleanup function that closes the log file.
func Init(path string) (func(), error) {
	var initErr error
	once.Do(func() {
		defaultLogger, initErr = newLogger(path)
	})
	if initErr != nil {
		return nil, initErr
	}
	if defaultLogger == nil {
		return nil, fmt.Errorf("logger initialization failed or already attempted")
	}
	return func() {
		if defaultLogger != nil && defaultLogger.file != nil {
			_ = defaultLogger.file.Close()
		}
	}, nil
}

func newLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, err
	}

	return &Logger{
		file:     f,
		writer:   f,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}, nil
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.enabled = enabled
		defaultLogger.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.minLevel = level
		defaultLogger.mu.Unlock()
	}
}

// Broker exposes the event broker so consumers can subscribe to entries as
// they are written (e.g. mirroring to stderr in debug mode).
func Broker() *pubsub.Broker[string] {
	if defaultLogger == nil {
		return nil
	}
	return defaultLogger.broker
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	if defaultLogger == nil || !defaultLogger.enabled {
		return
	}
	if level < defaultLogger.minLevel {
		return
	}

	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	// Format: 2026-08-26T10:45:00 [DEBUG] [run] message key=value
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	entry += "\n"

	if defaultLogger.writer != nil {
		_, _ = defaultLogger.writer.Write([]byte(entry))
	}

	if defaultLogger.broker != nil {
		defaultLogger.broker.Publish(pubsub.EmittedEvent, entry)
	}
}

// Entry is a pubsub event carrying one formatted log line.
type Entry = pubsub.Event[string]
