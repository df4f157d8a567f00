// Package logging writes one JSON object per line, timestamped in the
// application's time zone.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"rondasapi/internal/config"
)

var levelRank = map[string]int{
	"debug":   0,
	"info":    1,
	"warning": 2,
	"error":   3,
}

// Logger emits structured JSON lines. It is safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	loc   *time.Location
	level int
}

// New builds a Logger over an arbitrary writer.
func New(w io.Writer, loc *time.Location, level string) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank["info"]
	}
	return &Logger{out: w, loc: loc, level: rank}
}

// FromConfig writes to stdout, or to a rotating file when LOG_FILE is set.
func FromConfig(c config.LogConfig, loc *time.Location) *Logger {
	var w io.Writer = os.Stdout
	if c.File != "" {
		w = &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
			Compress:   true,
		}
	}
	return New(w, loc, c.Level)
}

// Nop discards everything.
func Nop() *Logger {
	return New(io.Discard, time.UTC, "error")
}

// Writer exposes the underlying sink, e.g. for access logs.
func (l *Logger) Writer() io.Writer { return l.out }

// Location is the zone used for the ts field.
func (l *Logger) Location() *time.Location { return l.loc }

func (l *Logger) Debug(fields map[string]any) { l.log("debug", fields) }
func (l *Logger) Info(fields map[string]any)  { l.log("info", fields) }
func (l *Logger) Warn(fields map[string]any)  { l.log("warning", fields) }
func (l *Logger) Error(fields map[string]any) { l.log("error", fields) }

func (l *Logger) log(level string, fields map[string]any) {
	if levelRank[level] < l.level {
		return
	}
	entry := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		entry[k] = v
	}
	entry["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := entry["level"]; !ok {
		entry["level"] = level
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	b = append(b, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(b)
}
