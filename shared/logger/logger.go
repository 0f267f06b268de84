package logger

import (
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = newLogger(os.Stdout)

func newLogger(out io.Writer) *log.Logger {
	l := log.New()
	l.Out = out
	l.Formatter = &log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}
	l.SetLevel(log.InfoLevel)
	return l
}

// Configure applies the level and format from configuration. Unknown levels
// keep the current one.
func Configure(level, format string) {
	if lvl, err := log.ParseLevel(strings.TrimSpace(level)); err == nil {
		logger.SetLevel(lvl)
	} else if level != "" {
		logger.Warnf("Unknown log level %q, keeping %s", level, logger.GetLevel())
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		logger.Formatter = &log.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	case "", "text":
		logger.Formatter = &log.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339}
	default:
		logger.Warnf("Unknown log format %q, using text", format)
	}
}

// SetOutput redirects all log output.
func SetOutput(out io.Writer) {
	logger.Out = out
}

// GetLogger returns an entry annotated with the calling function.
func GetLogger() *log.Entry {
	function, _, line, _ := runtime.Caller(1)

	entry := logger.WithField("line", line)
	if fn := runtime.FuncForPC(function); fn != nil {
		entry = entry.WithField("function", fn.Name())
	}
	return entry
}

// WithComponent returns an entry tagged with a component name.
func WithComponent(name string) *log.Entry {
	return logger.WithField("component", name)
}
