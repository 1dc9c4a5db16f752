package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger represents a file logger for one risk session. One logger instance per
// strategy instance, matching the one-governor-per-strategy usage model.
type Logger struct {
	strategy string
	logFile  *os.File
	logger   *log.Logger
	mu       sync.Mutex
	logDir   string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelRisk    LogLevel = "RISK"
	LogLevelAudit   LogLevel = "AUDIT"
)

// NewLogger creates a new file logger for the specified strategy
func NewLogger(strategy string) (*Logger, error) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", strategy, timestamp)
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		strategy: strategy,
		logFile:  file,
		logger:   log.New(file, "", 0),
		logDir:   logDir,
	}

	l.writeSessionHeader()

	return l, nil
}

// NewWriterLogger returns a logger that writes to w instead of a session file.
// No session header is written.
func NewWriterLogger(strategy string, w io.Writer) *Logger {
	return &Logger{
		strategy: strategy,
		logger:   log.New(w, "", 0),
	}
}

// NewDiscardLogger returns a logger that keeps the same API but writes nowhere.
// Used by tests and by callers that manage their own output.
func NewDiscardLogger() *Logger {
	return &Logger{
		strategy: "discard",
		logger:   log.New(discardWriter{}, "", 0),
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// writeSessionHeader writes a session start header to the log
func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
🛡️ RISK SESSION STARTED
================================================================================
Strategy: %s
Started: %s
================================================================================
`, l.strategy, time.Now().Format("2006-01-02 15:04:05"))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", timestamp, level, message))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// Risk logs a risk-control event (limit evaluation, halt, flatten signal)
func (l *Logger) Risk(format string, args ...interface{}) {
	l.Log(LogLevelRisk, format, args...)
}

// Audit logs operator actions that must survive post-session review
func (l *Logger) Audit(format string, args ...interface{}) {
	l.Log(LogLevelAudit, format, args...)
}

// LogBreach logs a limit breach together with the resulting halt
func (l *Logger) LogBreach(kind string, current, limit float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	breachLog := fmt.Sprintf(`
[%s] [RISK] ==================== LIMIT BREACH ====================
🚨 Limit: %s
📉 Current: %.2f%% | Allowed: %.2f%%
🛑 Trading halted - explicit re-enable required
=========================================================`,
		timestamp, kind, current, limit)

	l.logger.Println(breachLog)
}

// LogFlattenSignal logs the advisory close-all signal handed to the executor
func (l *Logger) LogFlattenSignal(reason string, err error) {
	if err != nil {
		l.Error("Flatten signal failed (%s): %v", reason, err)
		return
	}
	l.Risk("Flatten signal emitted: %s", reason)
}

// LogOverride logs a manual enable/disable action
func (l *Logger) LogOverride(action string) {
	l.Audit("Operator override: %s", action)
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// LogWarning logs warning with context
func (l *Logger) LogWarning(context string, message string, args ...interface{}) {
	fullMessage := fmt.Sprintf(context+": "+message, args...)
	l.Warning("%s", fullMessage)
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		footer := fmt.Sprintf(`
================================================================================
🛑 RISK SESSION ENDED
================================================================================
Ended: %s
================================================================================

`, timestamp)
		l.logger.Print(footer)

		return l.logFile.Close()
	}
	return nil
}

// GetLogPath returns the current log file path
func (l *Logger) GetLogPath() string {
	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", l.strategy, timestamp)
	return filepath.Join(l.logDir, filename)
}
