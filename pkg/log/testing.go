// Package log testing support.
//
// TestLogger captures structured log output in memory so tests can assert on
// the records a fit or transform produced without touching the process-wide
// logger. Entries are stored as JSON lines, one object per record.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// logSink is the shared capture target behind a TestLogger and every logger
// derived from it via With. It serializes writes so concurrent goroutines can
// log without corrupting the JSON stream.
type logSink struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

func (s *logSink) writeLine(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Write(line)
	s.buf.WriteByte('\n')
}

func (s *logSink) snapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func (s *logSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Reset()
}

// TestLogger is a Logger implementation that records every entry in memory.
// It is safe for concurrent use.
type TestLogger struct {
	sink   *logSink
	level  Level
	fields map[string]interface{}
}

// NewTestLogger returns a TestLogger that captures entries at or above level,
// together with the buffer holding the emitted JSON lines.
//
// Example:
//
//	logger, buffer := log.NewTestLogger(log.LevelDebug)
//	logger.Info("fit finished", log.SamplesKey, 100)
//	// assert on buffer.String() or logger.GetLogEntries()
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{
		sink:   &logSink{buf: buffer},
		level:  level,
		fields: map[string]interface{}{},
	}, buffer
}

// Debug implements Logger.Debug.
func (t *TestLogger) Debug(msg string, fields ...any) { t.log(LevelDebug, msg, fields) }

// Info implements Logger.Info.
func (t *TestLogger) Info(msg string, fields ...any) { t.log(LevelInfo, msg, fields) }

// Warn implements Logger.Warn.
func (t *TestLogger) Warn(msg string, fields ...any) { t.log(LevelWarn, msg, fields) }

// Error implements Logger.Error.
func (t *TestLogger) Error(msg string, fields ...any) { t.log(LevelError, msg, fields) }

// With implements Logger.With. The returned logger shares the same sink so
// captured entries from parent and child stay in one stream.
func (t *TestLogger) With(fields ...any) Logger {
	merged := make(map[string]interface{}, len(t.fields)+len(fields)/2)
	for k, v := range t.fields {
		merged[k] = v
	}
	addFields(merged, fields)
	return &TestLogger{sink: t.sink, level: t.level, fields: merged}
}

// Enabled implements Logger.Enabled.
func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

// log renders a single entry and appends it to the sink.
func (t *TestLogger) log(level Level, msg string, fields []any) {
	if level < t.level {
		return
	}

	entry := map[string]interface{}{
		"level":   level.String(),
		"message": msg,
	}
	for k, v := range t.fields {
		entry[k] = v
	}
	addFields(entry, fields)

	line, err := json.Marshal(entry)
	if err != nil {
		// Keep the stream parseable even when a field value cannot be
		// marshaled.
		line = []byte(fmt.Sprintf(`{"level":%q,"message":"log entry not serializable"}`, level.String()))
	}
	t.sink.writeLine(line)
}

// addFields copies key/value pairs into entry. A bare error value is stored
// under ErrAttrKey, matching how slog-style call sites pass errors without a
// key. Error values are flattened to their message so entries stay
// JSON-serializable. A trailing key without a value is dropped.
func addFields(entry map[string]interface{}, fields []any) {
	for i := 0; i < len(fields); {
		if err, ok := fields[i].(error); ok {
			entry[ErrAttrKey] = err.Error()
			i++
			continue
		}
		if i+1 >= len(fields) {
			return
		}
		key := fmt.Sprintf("%v", fields[i])
		if err, ok := fields[i+1].(error); ok {
			entry[key] = err.Error()
		} else {
			entry[key] = fields[i+1]
		}
		i += 2
	}
}

// GetBuffer returns the buffer holding the captured JSON lines.
func (t *TestLogger) GetBuffer() *bytes.Buffer {
	return t.sink.buf
}

// GetLogEntries parses the captured output and returns one map per record.
// This is useful for programmatic verification of log content.
//
// Example:
//
//	entries, err := testLogger.GetLogEntries()
//	if err != nil {
//	    t.Fatal(err)
//	}
//	if len(entries) != 2 {
//	    t.Errorf("Expected 2 log entries, got %d", len(entries))
//	}
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.sink.snapshot()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any captured record contains the given
// message content.
//
// Example:
//
//	if !testLogger.ContainsMessage("Fit completed") {
//	    t.Error("Expected fit completion log message")
//	}
func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.sink.snapshot(), message)
}

// ContainsField reports whether any captured record has the given field with
// the given value. Note that JSON decoding yields float64 for all numbers, so
// numeric expectations must be passed as float64.
//
// Example:
//
//	if !testLogger.ContainsField("ml.operation", "fit") {
//	    t.Error("Expected fit operation in logs")
//	}
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if fieldValue, exists := entry[key]; exists && fieldValue == value {
			return true
		}
	}
	return false
}

// Clear discards all captured records. Useful between test cases that share
// one logger.
func (t *TestLogger) Clear() {
	t.sink.reset()
}

// TestLoggerProvider implements LoggerProvider on top of a single TestLogger,
// so every logger it hands out shares one capture buffer.
type TestLoggerProvider struct {
	logger *TestLogger
}

// NewTestLoggerProvider creates a provider whose loggers capture entries at
// or above level, together with the shared capture buffer.
func NewTestLoggerProvider(level Level) (*TestLoggerProvider, *bytes.Buffer) {
	logger, buffer := NewTestLogger(level)
	return &TestLoggerProvider{logger: logger}, buffer
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *TestLoggerProvider) GetLogger() Logger {
	return p.logger
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName. The name is
// attached to every entry under ComponentKey.
func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.logger.With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *TestLoggerProvider) SetLevel(level Level) {
	p.logger.level = level
}

// GetBuffer returns the shared capture buffer.
func (p *TestLoggerProvider) GetBuffer() *bytes.Buffer {
	return p.logger.GetBuffer()
}
