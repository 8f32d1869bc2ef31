// Package log provides file-backed loggers shared across the application.
// Until Initialize is called every logger discards its output, so library
// code may log unconditionally.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/seracht/gpterm/internal/sentry"
)

const logFileName = "gpterm.log"

var (
	InfoLog    = stdlog.New(io.Discard, "INFO: ", stdlog.Ldate|stdlog.Ltime|stdlog.Lshortfile)
	WarningLog = stdlog.New(io.Discard, "WARN: ", stdlog.Ldate|stdlog.Ltime|stdlog.Lshortfile)
	ErrorLog   = stdlog.New(io.Discard, "ERROR: ", stdlog.Ldate|stdlog.Ltime|stdlog.Lshortfile)
	DebugLog   = stdlog.New(io.Discard, "DEBUG: ", stdlog.Ldate|stdlog.Ltime|stdlog.Lshortfile)
)

var logFile *os.File

// Initialize routes the loggers to the log file inside dir, creating the
// directory if needed. With debug false, DebugLog keeps discarding.
func Initialize(dir string, debug bool) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Printf("could not create log directory: %v\n", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Printf("could not open log file: %v\n", err)
		return
	}
	logFile = f

	// Warnings and errors tee through sentry; when telemetry is off the
	// writers pass straight through to the file.
	InfoLog.SetOutput(f)
	WarningLog.SetOutput(sentry.NewWriter(f, sentry.LevelWarning))
	ErrorLog.SetOutput(sentry.NewWriter(f, sentry.LevelError))
	if debug {
		DebugLog.SetOutput(f)
	}
}

// Close flushes and closes the log file opened by Initialize.
func Close() {
	if logFile == nil {
		return
	}
	InfoLog.SetOutput(io.Discard)
	WarningLog.SetOutput(io.Discard)
	ErrorLog.SetOutput(io.Discard)
	DebugLog.SetOutput(io.Discard)
	_ = logFile.Close()
	logFile = nil
}
