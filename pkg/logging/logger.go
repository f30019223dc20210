// Package logging provides structured logging for the benchmarks
// framework with JSON, console, and multi-destination output.
package logging

// Logger defines the interface for structured run logging.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning message.
	Warn(msg string, fields ...Field)

	// Error logs an error message.
	Error(msg string, fields ...Field)

	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// WithFields returns a Logger with additional default
	// fields attached to every subsequent log entry.
	WithFields(fields ...Field) Logger

	// LogTrial appends a per-trial record to the structured
	// trial log.
	LogTrial(record TrialRecord)

	// Close flushes any buffers and releases resources.
	Close() error
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// TrialRecord captures the outcome of one benchmark trial for the
// structured trial log (one JSON line per trial).
type TrialRecord struct {
	Timestamp  string           `json:"timestamp"`
	RunID      string           `json:"run_id"`
	Benchmark  string           `json:"benchmark"`
	Trial      int              `json:"trial"`
	Trials     int              `json:"trials"`
	DurationMs int64            `json:"duration_ms"`
	Counters   map[string]int64 `json:"counters,omitempty"`
}

// LogLevel represents logging severity levels.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn indicates potential issues.
	LevelWarn
	// LevelError indicates failures.
	LevelError
)

// String returns the string representation of a log level.
func (l LogLevel) String() string {
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
