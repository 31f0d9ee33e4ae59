// Package logging writes one JSON object per line for operational events.
package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Fields is a single log entry.
type Fields map[string]any

// Logger encodes entries as JSON lines, stamping "ts" in loc and deriving
// "level" from "status" when the caller did not set one.
type Logger struct {
	mu  sync.Mutex
	out *log.Logger
	loc *time.Location
	now func() time.Time
}

// New returns a Logger writing to w. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{
		out: log.New(w, "", 0),
		loc: loc,
		now: time.Now,
	}
}

// Default returns a Logger on stdout.
func Default(loc *time.Location) *Logger {
	return New(os.Stdout, loc)
}

// Log writes the entry. The map is copied so callers may reuse it.
func (l *Logger) Log(f Fields) {
	if l == nil {
		return
	}
	entry := make(Fields, len(f)+2)
	for k, v := range f {
		entry[k] = v
	}
	entry["ts"] = l.now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := entry["level"]; !ok {
		if entry["status"] == "error" {
			entry["level"] = "error"
		} else {
			entry["level"] = "info"
		}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		log.Printf("failed to marshal log entry: %v", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Println(string(b))
}

// Info logs msg at info level with extra fields.
func (l *Logger) Info(msg string, f Fields) {
	l.Log(merge(f, Fields{"level": "info", "msg": msg}))
}

// Error logs msg at error level, attaching err under "error".
func (l *Logger) Error(msg string, err error, f Fields) {
	extra := Fields{"level": "error", "msg": msg}
	if err != nil {
		extra["error"] = err.Error()
	}
	l.Log(merge(f, extra))
}

// Location returns the time zone used for "ts".
func (l *Logger) Location() *time.Location {
	if l == nil {
		return time.UTC
	}
	return l.loc
}

func merge(base, extra Fields) Fields {
	out := make(Fields, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
