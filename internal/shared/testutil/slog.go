package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// LogRecord is one captured log record.
type LogRecord struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogBuffer is a slog handler that captures records for assertions.
type LogBuffer struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewTestLogger returns a logger wired to a fresh capture buffer.
func NewTestLogger() (*slog.Logger, *LogBuffer) {
	buf := &LogBuffer{}
	return slog.New(buf), buf
}

// CaptureLogs installs a capture buffer as the default logger for the
// duration of the test and returns it.
func CaptureLogs(t *testing.T) *LogBuffer {
	t.Helper()
	logger, buf := NewTestLogger()
	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

// Handle implements slog.Handler.
func (b *LogBuffer) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, LogRecord{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// Enabled implements slog.Handler; every level is captured.
func (b *LogBuffer) Enabled(context.Context, slog.Level) bool { return true }

// WithAttrs implements slog.Handler.
func (b *LogBuffer) WithAttrs([]slog.Attr) slog.Handler { return b }

// WithGroup implements slog.Handler.
func (b *LogBuffer) WithGroup(string) slog.Handler { return b }

// Records returns a copy of the captured records.
func (b *LogBuffer) Records() []LogRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]LogRecord, len(b.records))
	copy(out, b.records)
	return out
}

// ContainsMessage reports whether any captured record's message
// contains the given text.
func (b *LogBuffer) ContainsMessage(text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.records {
		if strings.Contains(r.Message, text) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any captured record carries the given
// attribute value.
func (b *LogBuffer) ContainsAttr(key string, value any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.records {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Count returns the number of captured records.
func (b *LogBuffer) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}
