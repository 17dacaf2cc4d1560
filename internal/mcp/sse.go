package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter answers a POST /mcp/sse request. Each JSON-RPC response is
// written as one "data:" event and flushed immediately.
type SSEWriter struct {
	w http.ResponseWriter
}

// NewSSEWriter marks w as an event stream. Call it only once a response
// body is going to be written; notifications get a bare 202 instead.
func NewSSEWriter(w http.ResponseWriter) *SSEWriter {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("X-Accel-Buffering", "no")

	return &SSEWriter{w: w}
}

// SendEvent writes v as a single event. Flushing goes through
// http.ResponseController so the logging middleware's wrapper is skipped.
func (s *SSEWriter) SendEvent(v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal sse event: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write sse event: %w", err)
	}

	if err := http.NewResponseController(s.w).Flush(); err != nil {
		return fmt.Errorf("flush sse event: %w", err)
	}

	return nil
}

// SendError writes a JSON-RPC protocol error. Tool failures are not sent
// this way; they travel as results with isError set.
func (s *SSEWriter) SendError(id interface{}, code int, message string, data interface{}) error {
	return s.SendEvent(NewJSONRPCError(id, code, message, data))
}

// SendResponse writes a response produced by ToolInvoker.Handle.
func (s *SSEWriter) SendResponse(resp *JSONRPCResponse) error {
	return s.SendEvent(resp)
}
