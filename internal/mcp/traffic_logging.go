package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			clientID := safeSessionID(req)
			params := truncatePayload(formatPayload(safeParams(req)))
			logger.Debug("mcp traffic", "direction", direction, "stage", "request", "method", method, "client_session", clientID, "params", params)

			start := time.Now()
			result, err := next(ctx, method, req)
			if !strings.HasPrefix(method, "notifications/") {
				attrs := []any{
					"direction", direction,
					"stage", "response",
					"method", method,
					"client_session", clientID,
					"elapsed", time.Since(start),
					"result", truncatePayload(formatPayload(result)),
				}
				if err != nil {
					attrs = append(attrs, "error", err)
				}
				logger.Debug("mcp traffic", attrs...)
			}

			return result, err
		}
	}
}

func safeSessionID(req sdkmcp.Request) string {
	if req == nil {
		return ""
	}
	defer func() { recover() }()
	session := req.GetSession()
	if session == nil {
		return ""
	}
	return session.ID()
}

func safeParams(req sdkmcp.Request) any {
	if req == nil {
		return nil
	}
	defer func() { recover() }()
	return req.GetParams()
}

// maxLoggedPayload bounds logged payloads; views can carry thousands of rows.
const maxLoggedPayload = 2048

func truncatePayload(s string) string {
	if len(s) <= maxLoggedPayload {
		return s
	}
	return fmt.Sprintf("%s...(%d bytes)", s[:maxLoggedPayload], len(s))
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
