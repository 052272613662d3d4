package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	debugEnabled = false

	debugLogger = log.New(os.Stderr, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	infoLogger  = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// Init configures the package loggers. Logs go to stderr so the
// terminal UI owns stdout.
func Init(debug bool) {
	debugEnabled = debug
	if debugEnabled {
		Debug("debug logging enabled")
	}
}

// SetOutput redirects all log output, e.g. to a file while the TUI is
// running.
func SetOutput(w io.Writer) {
	debugLogger.SetOutput(w)
	infoLogger.SetOutput(w)
	errorLogger.SetOutput(w)
}

// Debug logs a debug message when debug mode is enabled.
func Debug(format string, v ...any) {
	if debugEnabled {
		_ = debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Info logs an informational message.
func Info(format string, v ...any) {
	_ = infoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Error logs an error message.
func Error(format string, v ...any) {
	_ = errorLogger.Output(2, fmt.Sprintf(format, v...))
}
