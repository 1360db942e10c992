package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	kerrors "github.com/forkloop/kernelapprox/pkg/errors"
)

// ErrFmtHandler decorates another slog handler with stack trace extraction.
// When a record carries an error attribute, the handler looks for stack
// information recorded by pkg/errors (cockroachdb wrapping or recovered
// panics) and attaches it under StacktraceAttrKey.
type ErrFmtHandler struct {
	inner slog.Handler
}

// WrapByErrFmtHandler wraps handler so that records logged with ErrAttr gain
// a stacktrace attribute when stack information is available.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{inner: handler}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.inner.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	if trace := traceFromRecord(r); trace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, trace))
	}
	return eh.inner.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{inner: eh.inner.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{inner: eh.inner.WithGroup(g)}
}

// traceFromRecord returns the stack trace of the first error attribute in r,
// or the empty string when the record has none.
func traceFromRecord(r slog.Record) string {
	var trace string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok {
			trace = extractStacktrace(err)
		}
		return false
	})
	return trace
}

// extractStacktrace pulls stack information out of err. Recovered panics
// carry the raw stack captured at panic time; errors built by pkg/errors
// carry a cockroachdb stack in their safe details.
func extractStacktrace(err error) string {
	var panicErr *kerrors.PanicError
	if errors.As(err, &panicErr) && panicErr.StackTrace != "" {
		return panicErr.StackTrace
	}
	if details := errors.GetSafeDetails(err).SafeDetails; len(details) > 0 {
		return details[0]
	}
	return ""
}
