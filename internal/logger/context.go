package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const commandIDKey ctxKey = "command_id"

func WithCommandID(ctx context.Context, commandID string) context.Context {
	return context.WithValue(ctx, commandIDKey, commandID)
}

func CommandIDFrom(ctx context.Context) string {
	if v := ctx.Value(commandIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns logger with command_id automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	cmdID := CommandIDFrom(ctx)
	if cmdID == "" {
		return L()
	}
	return L().With(zap.String("command_id", cmdID))
}
