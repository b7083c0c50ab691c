package logger

import (
	"context"

	"go.uber.org/zap"

	"marketbridge/internal/utils"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns logger with request_id and member_id automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	log := L()

	if reqID := RequestIDFrom(ctx); reqID != "" {
		log = log.With(zap.String("request_id", reqID))
	}
	if memberID, ok := utils.GetMemberIDFromContext(ctx); ok {
		log = log.With(zap.Int64("member_id", memberID))
	}

	return log
}
