package mcp

import (
	"context"
	"log/slog"
)

type correlationKey struct{}

// WithCorrelationID attaches a request correlation ID to ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the correlation ID stored in ctx, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// LogToolRequest logs an incoming tool call.
func LogToolRequest(ctx context.Context, logger *slog.Logger, tool, chainID, correlationID string) {
	logger.InfoContext(ctx, "tool_request",
		"component", "mcp-provider",
		"tool_name", tool,
		"chain_id", chainID,
		"correlation_id", correlationID,
	)
}

// LogToolSuccess logs a completed tool call.
func LogToolSuccess(ctx context.Context, logger *slog.Logger, tool, chainID, correlationID string, latencyMS int64) {
	logger.InfoContext(ctx, "tool_success",
		"component", "mcp-provider",
		"tool_name", tool,
		"chain_id", chainID,
		"correlation_id", correlationID,
		"latency_ms", latencyMS,
	)
}

// LogToolError logs a tool call that ended in a ToolError.
func LogToolError(ctx context.Context, logger *slog.Logger, tool, chainID, correlationID, errorMsg string, latencyMS int64) {
	logger.WarnContext(ctx, "tool_error",
		"component", "mcp-provider",
		"tool_name", tool,
		"chain_id", chainID,
		"correlation_id", correlationID,
		"error_message", errorMsg,
		"latency_ms", latencyMS,
	)
}

// LogRPCError logs a protocol-level failure.
func LogRPCError(ctx context.Context, logger *slog.Logger, method, correlationID string, errorCode int, errorMsg string) {
	logger.ErrorContext(ctx, "mcp_error",
		"component", "mcp-provider",
		"method", method,
		"correlation_id", correlationID,
		"error_code", errorCode,
		"error_message", errorMsg,
	)
}
