package httpapi

import (
	"context"

	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

// withRequestID also tags every context-aware log line below the middleware.
func withRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDContextKey, requestID)
	if requestID == "" {
		return ctx
	}
	return logging.ContextWith(ctx, "request_id", requestID)
}

func requestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDContextKey).(string)
	return v
}
