package logger

import (
	"context"

	"go.uber.org/zap"
)

type requestIDKey struct{}

// ContextWithRequestID stores a request id for later log entries.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by ContextWithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ContextFields returns the log fields carried by ctx.
func ContextFields(ctx context.Context) []zap.Field {
	return StringFields(StringField{Key: FieldRequestID, Value: RequestID(ctx)})
}
