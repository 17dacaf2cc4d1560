// Package mcp exposes the tool dispatcher over the Model Context Protocol:
// JSON-RPC 2.0 framing for the HTTP transport and an mcp-go server for stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dextools-mcp/internal/tools"
)

// ServerName is announced to MCP clients.
const ServerName = "dextools-mcp"

// ToolInvoker routes MCP requests to the dispatcher.
type ToolInvoker struct {
	dispatcher *tools.Dispatcher
	version    string
	logger     *slog.Logger
}

// NewToolInvoker creates a new tool invoker over d.
func NewToolInvoker(d *tools.Dispatcher, version string, logger *slog.Logger) *ToolInvoker {
	return &ToolInvoker{
		dispatcher: d,
		version:    version,
		logger:     logger,
	}
}

// ListTools returns a descriptor for every registered tool.
func (ti *ToolInvoker) ListTools() []Tool {
	ops := ti.dispatcher.Operations()
	out := make([]Tool, 0, len(ops))
	for _, op := range ops {
		out = append(out, Tool{
			Name:        op.Name,
			Description: op.Description,
			InputSchema: op.InputSchema(),
		})
	}
	return out
}

// InvokeTool dispatches one tool call. ToolErrors come back as a result
// with IsError set; the returned error is reserved for protocol faults.
func (ti *ToolInvoker) InvokeTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error) {
	start := time.Now()
	correlationID := CorrelationID(ctx)
	chainID := argString(args, tools.ArgChainID)

	LogToolRequest(ctx, ti.logger, toolName, chainID, correlationID)

	res := ti.dispatcher.Dispatch(ctx, toolName, args)

	text, err := json.Marshal(res.Map())
	if err != nil {
		return nil, &RPCError{
			Code:    InternalError,
			Message: "Failed to serialize tool result",
			Data:    err.Error(),
		}
	}

	latencyMS := time.Since(start).Milliseconds()
	if res.Failed() {
		LogToolError(ctx, ti.logger, toolName, chainID, correlationID, res.Err, latencyMS)
	} else {
		LogToolSuccess(ctx, ti.logger, toolName, chainID, correlationID, latencyMS)
	}

	return &CallToolResult{
		Content: []TextContent{
			{
				Type: "text",
				Text: string(text),
			},
		},
		IsError: res.Failed(),
	}, nil
}

// Handle answers one JSON-RPC request. Notifications yield nil.
func (ti *ToolInvoker) Handle(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	switch req.Method {
	case "initialize":
		return NewJSONRPCResult(req.ID, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities: map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			ServerInfo: ServerInfo{Name: ServerName, Version: ti.version},
		})

	case "ping":
		return NewJSONRPCResult(req.ID, map[string]interface{}{})

	case "tools/list", "list_tools":
		return NewJSONRPCResult(req.ID, ListToolsResult{Tools: ti.ListTools()})

	case "tools/call", "call_tool":
		params, err := ParseCallToolParams(req.Params)
		if err != nil {
			rpcErr := FormatMCPError(err)
			return NewJSONRPCError(req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		}

		result, err := ti.InvokeTool(ctx, params.Name, params.Arguments)
		if err != nil {
			rpcErr := FormatMCPError(err)
			LogRPCError(ctx, ti.logger, req.Method, CorrelationID(ctx), rpcErr.Code, rpcErr.Message)
			return NewJSONRPCError(req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		}
		return NewJSONRPCResult(req.ID, result)
	}

	if strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}
	return NewJSONRPCError(req.ID, MethodNotFound, "Unknown method", req.Method)
}

func argString(args map[string]interface{}, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
