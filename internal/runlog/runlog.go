// Package runlog provides the per-run log accumulator returned with every
// pipeline result. Each run owns its own Log; nothing is shared between runs
// and nothing survives a run beyond the transcript handed to the caller.
package runlog

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log entry.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// timestampFormat is the layout used for transcript lines.
const timestampFormat = "2006-01-02 15:04:05"

// Entry is a single timestamped log line.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
}

// Log accumulates entries for one pipeline run in chronological order.
// It is safe for concurrent use, although a run itself is single-threaded.
type Log struct {
	mu      sync.Mutex
	now     func() time.Time
	entries []Entry
}

// New creates an empty Log using the system clock.
func New() *Log {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty Log with an injected clock, used by tests
// that assert on transcript contents.
func NewWithClock(now func() time.Time) *Log {
	return &Log{now: now}
}

func (l *Log) append(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		Timestamp: l.now().UTC(),
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Infof appends an info-level entry.
func (l *Log) Infof(format string, args ...interface{}) {
	l.append(LevelInfo, format, args...)
}

// Warnf appends a warning-level entry.
func (l *Log) Warnf(format string, args ...interface{}) {
	l.append(LevelWarning, format, args...)
}

// Errorf appends an error-level entry.
func (l *Log) Errorf(format string, args ...interface{}) {
	l.append(LevelError, format, args...)
}

// Entries returns a copy of all entries in chronological order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Transcript renders the log as plain text, one entry per line formatted as
// "<timestamp> | <LEVEL> | <message>".
func (l *Log) Transcript() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(e.Timestamp.Format(timestampFormat))
		b.WriteString(" | ")
		b.WriteString(string(e.Level))
		b.WriteString(" | ")
		b.WriteString(e.Message)
		b.WriteString("\n")
	}
	return b.String()
}
