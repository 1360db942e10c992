package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Attribute keys recognized by ErrFmtHandler when a record carries an error.
const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// SetupLogger installs the process-wide slog logger used by the examples and
// by applications embedding kernelapprox. Records are emitted to stdout as
// JSON with CloudLogging-compatible attribute names.
func SetupLogger(loglevel string) {
	SetupLoggerWithWriter(os.Stdout, loglevel)
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination.
// Tests use this to capture the emitted JSON.
func SetupLoggerWithWriter(w io.Writer, loglevel string) {
	ops := slog.HandlerOptions{
		AddSource:   true,
		Level:       ToLogLevel(loglevel),
		ReplaceAttr: renameForCloudLogging,
	}
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops))
	slog.SetDefault(slog.New(handler))
}

// renameForCloudLogging maps slog's default keys onto the names CloudLogging
// expects for severity, message and source location.
func renameForCloudLogging(groups []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.LevelKey:
		attr.Key = "severity"
	case slog.MessageKey:
		attr.Key = "message"
	case slog.SourceKey:
		attr.Key = "logging.googleapis.com/sourceLocation"
	}
	return attr
}

// ToLogLevel converts a level name to its slog.Level. The empty string maps
// to info. Unknown names panic because they indicate broken configuration.
func ToLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

// ErrAttr wraps err so that ErrFmtHandler can attach stack trace output.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
