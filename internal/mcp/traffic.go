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

// maxLoggedPayload truncates logged params and results.
const maxLoggedPayload = 2048

const redacted = "[redacted]"

// sensitiveFields never reach the debug log, at any depth of a payload.
var sensitiveFields = map[string]bool{
	"password":         true,
	"confirm_password": true,
	"aadhaar":          true,
	"token":            true,
}

// trafficLogger logs each MCP exchange at debug level. Registration
// payloads carry passwords and Aadhaar numbers, so payloads are redacted
// before they are written. Notifications have no response to log.
func trafficLogger(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			base := []any{"direction", direction, "method", method, "session_id", requestSessionID(req)}
			logger.Debug("mcp request", append(base, "params", formatPayload(requestParams(req)))...)

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			base = append(base, "tenant_id", getTenantID(ctx), "duration", time.Since(start))
			if err != nil {
				logger.Debug("mcp response", append(base, "error", err)...)
			} else {
				logger.Debug("mcp response", append(base, "result", formatPayload(result))...)
			}
			return result, err
		}
	}
}

// requestParams tolerates requests whose params accessor panics on a nil
// receiver.
func requestParams(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

// formatPayload renders payload as redacted JSON, cut at maxLoggedPayload.
func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}

	var tree any
	if json.Unmarshal(data, &tree) == nil && redact(tree) {
		data, _ = json.Marshal(tree)
	}
	if len(data) > maxLoggedPayload {
		return string(data[:maxLoggedPayload]) + "..."
	}
	return string(data)
}

// redact blanks sensitive fields in place and reports whether it changed
// anything.
func redact(v any) bool {
	changed := false
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			if sensitiveFields[strings.ToLower(k)] {
				v[k] = redacted
				changed = true
				continue
			}
			changed = redact(child) || changed
		}
	case []any:
		for _, child := range v {
			changed = redact(child) || changed
		}
	}
	return changed
}
