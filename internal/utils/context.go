package utils

import "context"

type ctxKey string

const (
	memberIDKey    ctxKey = "member_id"
	memberEmailKey ctxKey = "member_email"
)

func WithMemberID(ctx context.Context, memberID int64) context.Context {
	return context.WithValue(ctx, memberIDKey, memberID)
}

func GetMemberIDFromContext(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(memberIDKey).(int64)
	return v, ok
}

func WithMemberEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, memberEmailKey, email)
}

func GetMemberEmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(memberEmailKey).(string)
	return v, ok
}
