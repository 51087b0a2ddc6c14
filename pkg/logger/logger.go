// Package logger is the process-wide leveled logger. Until Init or
// InitWriter is called every call is a no-op, so library code can log
// unconditionally.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	globalLogger *log.Logger
	logFile      *os.File
	verbose      bool
	mu           sync.Mutex
)

// Init directs the global logger to the file at logPath (appending).
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	logFile = f
	globalLogger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)

	return nil
}

// InitWriter directs the global logger to w, e.g. os.Stderr for the server.
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()
	globalLogger = log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds)
}

// SetVerbose enables Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// Close closes the log file and disables logging.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()
	globalLogger = nil
}

func closeFileLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func printf(level, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger != nil {
		globalLogger.Printf("["+level+"] "+format, v...)
	}
}

// Info logs an info message.
func Info(format string, v ...interface{}) {
	printf("INFO", format, v...)
}

// Debug logs a debug message when verbose logging is on.
func Debug(format string, v ...interface{}) {
	mu.Lock()
	on := verbose
	mu.Unlock()

	if on {
		printf("DEBUG", format, v...)
	}
}

// Error logs an error message.
func Error(format string, v ...interface{}) {
	printf("ERROR", format, v...)
}

// Warn logs a warning message.
func Warn(format string, v ...interface{}) {
	printf("WARN", format, v...)
}
