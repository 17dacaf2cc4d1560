package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"dextools-mcp/internal/mcp"
)

// MCPInvokeHandler serves JSON-RPC requests over the SSE transport.
type MCPInvokeHandler struct {
	invoker *mcp.ToolInvoker
	timeout time.Duration
	logger  *slog.Logger
}

// NewMCPInvokeHandler creates a new MCP handler. Each request is bounded by
// timeout.
func NewMCPInvokeHandler(invoker *mcp.ToolInvoker, timeout time.Duration, logger *slog.Logger) *MCPInvokeHandler {
	return &MCPInvokeHandler{
		invoker: invoker,
		timeout: timeout,
		logger:  logger.With("handler", "mcp_sse"),
	}
}

// ServeHTTP handles POST /mcp/sse.
func (h *MCPInvokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	correlationID := GetCorrelationID(r.Context())

	req, err := mcp.ParseJSONRPCRequest(r.Body)
	if err != nil {
		rpcErr := mcp.FormatMCPError(err)
		mcp.LogRPCError(r.Context(), h.logger, "", correlationID, rpcErr.Code, rpcErr.Message)
		mcp.NewSSEWriter(w).SendError(nil, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	done := make(chan *mcp.JSONRPCResponse, 1)
	go func() {
		done <- h.invoker.Handle(ctx, req)
	}()

	select {
	case resp := <-done:
		if resp == nil {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		if err := mcp.NewSSEWriter(w).SendResponse(resp); err != nil {
			h.logger.Error("sse_write_failed", "error", err, "correlation_id", correlationID)
		}

	case <-ctx.Done():
		mcp.LogRPCError(ctx, h.logger, req.Method, correlationID, mcp.TimeoutExceeded, "Request timeout")
		mcp.NewSSEWriter(w).SendError(req.ID, mcp.TimeoutExceeded, "Request timeout", map[string]interface{}{
			"timeout_ms": h.timeout.Milliseconds(),
		})
	}
}
