package middleware

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"rondasapi/internal/logging"
)

// Logger writes one JSON access-log line per request to the application log sink.
func Logger(log *logging.Logger) fiber.Handler {
	return LoggerWithWriter(log.Writer(), log.Location())
}

// LoggerWithWriter logs request_id, method, path, status, latency (ms) and
// ts, the time the request finished in loc. trace_id is added when the
// request is part of a sampled trace.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	var mu sync.Mutex
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		entry := map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
			"ts":         time.Now().In(loc).Format(time.RFC3339Nano),
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			entry["trace_id"] = sc.TraceID().String()
		}
		if u := CurrentUser(c); u != nil {
			entry["user_id"] = u.ID
		}

		mu.Lock()
		_ = enc.Encode(entry)
		mu.Unlock()
		return err
	}
}
