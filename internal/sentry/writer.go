package sentry

import (
	"io"
	"regexp"
	"strings"

	gosentry "github.com/getsentry/sentry-go"
)

// Level represents the severity level for the sentry writer.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// Writer tees a logger's output to Sentry. Errors become Sentry events;
// warnings and info become breadcrumbs. The log file always gets the raw
// line; Sentry gets it stripped of the std logger prefix so identical
// failures group into one issue, and with anything key-shaped redacted.
type Writer struct {
	inner io.Writer
	level Level
}

// NewWriter creates a Writer that tees to inner and forwards to Sentry.
func NewWriter(inner io.Writer, level Level) *Writer {
	return &Writer{inner: inner, level: level}
}

// logPrefix matches the "PREFIX: date time file:line:" header the package
// loggers put in front of every line.
var logPrefix = regexp.MustCompile(`^[A-Z]+: \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} [^ ]+:\d+: `)

// apiKey matches OpenAI-style secret keys wherever they leak into a message.
var apiKey = regexp.MustCompile(`sk-[A-Za-z0-9_-]{8,}`)

func (w *Writer) Write(p []byte) (int, error) {
	// Always write to the original destination first.
	n, err := w.inner.Write(p)

	if !enabled {
		return n, err
	}

	msg := strings.TrimSpace(string(p))
	msg = logPrefix.ReplaceAllString(msg, "")
	msg = apiKey.ReplaceAllString(msg, "sk-[redacted]")
	if msg == "" {
		return n, err
	}

	switch w.level {
	case LevelError:
		gosentry.CaptureMessage(msg)
	case LevelWarning:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
			Level:    gosentry.LevelWarning,
			Category: "log",
			Message:  msg,
		})
	case LevelInfo:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
			Level:    gosentry.LevelInfo,
			Category: "log",
			Message:  msg,
		})
	}

	return n, err
}
