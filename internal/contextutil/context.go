// internal/contextutil/context.go
package contextutil

import (
	"context"

	"authgate/internal/auth"
	"authgate/internal/observability/logging"
)

// Key is a type-safe key for context values
type Key string

const (
	// LoggerKey is the key for the logger
	LoggerKey Key = "context:logger"

	// TraceIDKey is the key for the trace ID
	TraceIDKey Key = "context:trace_id"

	// SpanIDKey is the key for the span ID
	SpanIDKey Key = "context:span_id"

	// IdentityKey is the key for the identity
	IdentityKey Key = "context:identity"

	// SchemeKey is the key for the authentication scheme
	SchemeKey Key = "context:scheme"

	// RejectReasonKey is the key for the authentication rejection reason
	RejectReasonKey Key = "context:reject_reason"

	// RequestIDKey is the key for the request ID
	RequestIDKey Key = "context:request_id"
)

// WithLogger adds a logger to a context
func WithLogger(ctx context.Context, logger *logging.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// GetLogger retrieves a logger from a context
func GetLogger(ctx context.Context) *logging.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*logging.Logger); ok {
		return logger
	}
	return nil
}

// WithTraceID adds a trace ID to a context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves a trace ID from a context
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// WithSpanID adds a span ID to a context
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, SpanIDKey, spanID)
}

// GetSpanID retrieves a span ID from a context
func GetSpanID(ctx context.Context) string {
	if spanID, ok := ctx.Value(SpanIDKey).(string); ok {
		return spanID
	}
	return ""
}

// WithIdentity adds an identity to a context
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentity retrieves an identity from a context
func GetIdentity(ctx context.Context) *auth.Identity {
	if identity, ok := ctx.Value(IdentityKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

// WithScheme adds an authentication scheme to a context
func WithScheme(ctx context.Context, scheme string) context.Context {
	return context.WithValue(ctx, SchemeKey, scheme)
}

// GetScheme retrieves an authentication scheme from a context
func GetScheme(ctx context.Context) string {
	if scheme, ok := ctx.Value(SchemeKey).(string); ok {
		return scheme
	}
	return ""
}

// WithRejectReason records why authentication rejected the request, so the
// authorization stage can surface it when it answers 401
func WithRejectReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, RejectReasonKey, reason)
}

// GetRejectReason retrieves the authentication rejection reason from a context
func GetRejectReason(ctx context.Context) string {
	if reason, ok := ctx.Value(RejectReasonKey).(string); ok {
		return reason
	}
	return ""
}

// WithRequestID adds a request ID to a context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves a request ID from a context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// EnrichContext adds standard observability items to a context
func EnrichContext(ctx context.Context, logger *logging.Logger) context.Context {
	traceID := GetTraceID(ctx)
	if traceID == "" {
		traceID = logging.NewTraceID()
		ctx = WithTraceID(ctx, traceID)
	}

	spanID := logging.NewSpanID()
	ctx = WithSpanID(ctx, spanID)

	if logger != nil {
		logger = logger.With(
			logging.TraceIDKey, traceID,
			logging.SpanIDKey, spanID,
		)
		ctx = WithLogger(ctx, logger)
	}

	return ctx
}
