package mcp

import (
	"context"

	"github.com/google/uuid"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewStdioServer builds an mcp-go server exposing every tool known to ti.
// Serve it with server.ServeStdio.
func NewStdioServer(ti *ToolInvoker) *server.MCPServer {
	s := server.NewMCPServer(ServerName, ti.version, server.WithToolCapabilities(false))

	for _, tool := range ti.ListTools() {
		s.AddTool(toMCPTool(tool), ti.handler(tool.Name))
	}

	return s
}

func (ti *ToolInvoker) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		ctx = WithCorrelationID(ctx, uuid.NewString())

		result, err := ti.InvokeTool(ctx, name, req.GetArguments())
		if err != nil {
			return nil, err
		}

		content := make([]mcpgo.Content, 0, len(result.Content))
		for _, c := range result.Content {
			content = append(content, mcpgo.TextContent{Type: c.Type, Text: c.Text})
		}
		return &mcpgo.CallToolResult{
			Content: content,
			IsError: result.IsError,
		}, nil
	}
}

func toMCPTool(tool Tool) mcpgo.Tool {
	properties, _ := tool.InputSchema["properties"].(map[string]interface{})
	required, _ := tool.InputSchema["required"].([]string)

	return mcpgo.Tool{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: mcpgo.ToolInputSchema{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}
