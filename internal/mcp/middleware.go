package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware returns middleware that logs every MCP method call
// with its duration. Output goes through the slog default set up in
// internal/logging, so it lands on stderr or the log file and never on
// the stdout transport.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)

			attrs := []slog.Attr{
				slog.String("method", method),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			level := slog.LevelInfo
			msg := "method completed"
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				level = slog.LevelError
				msg = "method failed"
			}
			slog.LogAttrs(ctx, level, msg, attrs...)

			return result, err
		}
	}
}
