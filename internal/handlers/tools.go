package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"dextools-mcp/internal/chains"
	"dextools-mcp/internal/mcp"
	"dextools-mcp/internal/models"
	"dextools-mcp/internal/tools"
)

// ToolsHandler serves the REST view of the tool registry.
type ToolsHandler struct {
	dispatcher *tools.Dispatcher
	logger     *slog.Logger
}

// NewToolsHandler creates a new REST tools handler.
func NewToolsHandler(d *tools.Dispatcher, logger *slog.Logger) *ToolsHandler {
	return &ToolsHandler{
		dispatcher: d,
		logger:     logger.With("handler", "tools"),
	}
}

// List handles GET /tools.
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	ops := h.dispatcher.Operations()
	resp := models.ToolsResponse{Tools: make([]models.ToolDescriptor, 0, len(ops))}
	for _, op := range ops {
		resp.Tools = append(resp.Tools, models.ToolDescriptor{
			Name:        op.Name,
			Description: op.Description,
			InputSchema: op.InputSchema(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Call handles GET /tools/{name}. Query parameters become tool arguments.
func (h *ToolsHandler) Call(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var args map[string]any
	if op, ok := h.dispatcher.Lookup(name); ok {
		args = queryArgs(op, r)
	}

	res := h.dispatcher.Dispatch(r.Context(), name, args)
	status := mcp.HTTPStatusFromResult(res)

	if res.Failed() {
		h.logger.Info("tool_call_failed",
			"tool_name", name,
			"status", status,
			"error", res.Err,
			"correlation_id", GetCorrelationID(r.Context()),
		)
	}

	writeJSON(w, status, res.Map())
}

// queryArgs converts the query string into arguments, turning values of
// integer parameters into ints when they parse as such.
func queryArgs(op *tools.Operation, r *http.Request) map[string]any {
	types := make(map[string]tools.ParamType, len(op.Params))
	for _, p := range op.Params {
		types[p.Name] = p.Type
	}

	args := make(map[string]any)
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		v := values[0]
		if types[key] == tools.TypeInteger {
			if n, err := cast.ToIntE(v); err == nil {
				args[key] = n
				continue
			}
		}
		args[key] = v
	}
	return args
}

// Chains handles GET /chains.
func Chains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ChainsResponse{
		Supported: chains.Supported(),
		Aliases:   chains.Aliases(),
	})
}

// HealthCheckHandler returns a simple health check handler.
func HealthCheckHandler(info models.HealthResponse) http.HandlerFunc {
	info.Status = "healthy"
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, info)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// sendError sends a JSON error response.
func sendError(w http.ResponseWriter, statusCode int, errorCode string, message string) {
	writeJSON(w, statusCode, models.ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}
