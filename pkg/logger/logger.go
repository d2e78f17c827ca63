package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/roamlog/api/pkg/ctxutil"
)

// InitLogging configures the logger. It sets the log level from the LOG_LEVEL environment variable if present.
func InitLogging() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug" // default if not set
	}
	setLogLevel(logLevel)
	logFormat := os.Getenv("LOG_FORMAT")
	if strings.ToLower(logFormat) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	default:
		logrus.Infof("invalid LOG_LEVEL %q, defaulting to debug", level)
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// With returns an entry carrying the given fields plus any request and
// client IDs present on the context.
func With(ctx context.Context, fields map[string]any) *logrus.Entry {
	all := logrus.Fields{}
	if id := ctxutil.RequestID(ctx); id != "" {
		all["request_id"] = id
	}
	if id := ctxutil.ClientID(ctx); id != "" {
		all["client_id"] = id
	}
	for k, v := range fields {
		all[k] = v
	}
	return logrus.WithFields(all)
}

// WithField returns an entry carrying a single extra field.
func WithField(ctx context.Context, key string, value any) *logrus.Entry {
	return With(ctx, map[string]any{key: value})
}

// Sprintf is fmt.Sprintf, re-exported so callers building log messages
// don't need a second import.
func Sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func Info(_ context.Context, msg string, args ...interface{}) {
	logrus.Infof(msg, args...)
}

func Debug(_ context.Context, msg string, args ...any) {
	logrus.Debugf(msg, args...)
}

func Error(_ context.Context, msg string, args ...any) {
	logrus.Errorf(msg, args...)
}

func Trace(_ context.Context, msg string, args ...any) {
	logrus.Tracef(msg, args...)
}

func Warn(_ context.Context, msg string, args ...any) {
	logrus.Warnf(msg, args...)
}

func Fatal(_ context.Context, msg string, args ...any) {
	logrus.Fatalf(msg, args...)
}
