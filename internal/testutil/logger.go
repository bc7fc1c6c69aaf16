// Package testutil holds test doubles shared across packages.
package testutil

import (
	"fmt"
	"strings"
	"sync"

	"modlist.dev/cli/internal/application/ports"
)

// LogEntry is a single captured log call
type LogEntry struct {
	Level   ports.LogLevel
	Message string
	Err     error
	Fields  map[string]interface{}
}

// RecordingLogger captures log calls for assertions
type RecordingLogger struct {
	mu      sync.Mutex
	level   ports.LogLevel
	entries []LogEntry
}

// NewRecordingLogger creates a logger that records every level
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{level: ports.LogLevelDebug}
}

func (l *RecordingLogger) record(entry LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry.Level.Rank() < l.level.Rank() {
		return
	}
	l.entries = append(l.entries, entry)
}

func (l *RecordingLogger) Log(level ports.LogLevel, message string, fields map[string]interface{}) {
	l.record(LogEntry{Level: level, Message: message, Fields: fields})
}

func (l *RecordingLogger) LogError(err error, message string, fields map[string]interface{}) {
	l.record(LogEntry{Level: ports.LogLevelError, Message: message, Err: err, Fields: fields})
}

func (l *RecordingLogger) LogInfo(message string, fields map[string]interface{}) {
	l.record(LogEntry{Level: ports.LogLevelInfo, Message: message, Fields: fields})
}

func (l *RecordingLogger) LogDebug(message string, fields map[string]interface{}) {
	l.record(LogEntry{Level: ports.LogLevelDebug, Message: message, Fields: fields})
}

func (l *RecordingLogger) LogWarning(message string, fields map[string]interface{}) {
	l.record(LogEntry{Level: ports.LogLevelWarn, Message: message, Fields: fields})
}

func (l *RecordingLogger) SetLogLevel(level ports.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *RecordingLogger) GetLogLevel() ports.LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Entries returns a copy of the captured entries
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// EntriesAt returns the captured entries with the given level
func (l *RecordingLogger) EntriesAt(level ports.LogLevel) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// String renders all entries, one per line, for failure messages
func (l *RecordingLogger) String() string {
	var b strings.Builder
	for _, e := range l.Entries() {
		fmt.Fprintf(&b, "%s: %s %v", e.Level, e.Message, e.Fields)
		if e.Err != nil {
			fmt.Fprintf(&b, " err=%v", e.Err)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
