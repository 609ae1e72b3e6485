package logger

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

const sentryFlushTimeout = 2 * time.Second

// Fields represents structured log fields
type Fields map[string]interface{}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var minLevel = LevelInfo

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

func SetLevel(l Level) {
	minLevel = l
}

func sentryOptions(dsn, environment, release string, debug bool) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     "chordbloom@" + release,
		Debug:       debug,
	}
}

// InitSentry binds a Sentry client when dsn is set. The returned func flushes
// pending events and is safe to call either way.
func InitSentry(dsn, environment, release string, debug bool) func() {
	if dsn == "" {
		Debug("Sentry not configured", nil)
		return func() {}
	}
	if err := sentry.Init(sentryOptions(dsn, environment, release, debug)); err != nil {
		log.Printf("Failed to initialize Sentry: %v", err)
		return func() {}
	}
	Info("Sentry initialized", Fields{"environment": environment, "release": release})
	return func() {
		sentry.Flush(sentryFlushTimeout)
	}
}

// WithRequest pulls the request id and route out of r for logging.
func WithRequest(r *http.Request) Fields {
	return Fields{
		"request_id": r.Header.Get("X-Request-ID"),
		"method":     r.Method,
		"path":       r.URL.Path,
	}
}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	if minLevel > LevelInfo {
		return
	}
	log.Printf("[INFO] %s %v", msg, formatFields(fields))
	breadcrumb("info", msg, fields, sentry.LevelInfo)
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	if minLevel > LevelWarn {
		return
	}
	log.Printf("[WARN] %s %v", msg, formatFields(fields))
	breadcrumb("warning", msg, fields, sentry.LevelWarning)
}

func Debug(msg string, fields Fields) {
	if minLevel > LevelDebug {
		return
	}
	log.Printf("[DEBUG] %s %v", msg, formatFields(fields))
	breadcrumb("debug", msg, fields, sentry.LevelDebug)
}

// Error logs an error message with structured fields and sends to Sentry
func Error(msg string, err error, fields Fields) {
	log.Printf("[ERROR] %s: %v %v", msg, err, formatFields(fields))

	if hub := sentry.CurrentHub(); hub.Client() != nil && err != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for key, value := range fields {
				scope.SetContext(key, map[string]interface{}{
					"value": value,
				})
			}
			if requestID, ok := fields["request_id"].(string); ok {
				scope.SetTag("request_id", requestID)
			}
			hub.CaptureException(err)
		})
	}
}

func breadcrumb(kind, msg string, fields Fields, level sentry.Level) {
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		sentry.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     kind,
			Category: "log",
			Message:  msg,
			Data:     convertFieldsToMap(fields),
			Level:    level,
		})
	}
}

// formatFields prints fields sorted by key so log lines are stable.
func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + formatValue(fields[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func convertFieldsToMap(fields Fields) map[string]interface{} {
	result := make(map[string]interface{})
	for k, v := range fields {
		result[k] = v
	}
	return result
}
