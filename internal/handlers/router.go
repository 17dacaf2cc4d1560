package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dextools-mcp/internal/mcp"
	"dextools-mcp/internal/models"
	"dextools-mcp/internal/tools"
)

// RouterConfig holds what the HTTP transport needs.
type RouterConfig struct {
	Dispatcher *tools.Dispatcher
	Invoker    *mcp.ToolInvoker
	Health     models.HealthResponse
	Timeout    time.Duration
	Logger     *slog.Logger
}

// NewRouter builds the HTTP transport.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(CorrelationIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(TimeoutMiddleware(cfg.Timeout, cfg.Logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, http.StatusNotFound, "not_found", "No route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not supported here")
	})

	r.Get("/health", HealthCheckHandler(cfg.Health))
	r.Get("/chains", Chains)

	toolsHandler := NewToolsHandler(cfg.Dispatcher, cfg.Logger)
	r.Get("/tools", toolsHandler.List)
	r.Get("/tools/{name}", toolsHandler.Call)

	r.Method(http.MethodPost, "/mcp/sse", NewMCPInvokeHandler(cfg.Invoker, cfg.Timeout, cfg.Logger))

	return r
}
