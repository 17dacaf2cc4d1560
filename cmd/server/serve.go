package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"dextools-mcp/internal/config"
	"dextools-mcp/internal/handlers"
	"dextools-mcp/internal/mcp"
	"dextools-mcp/internal/models"
)

func newServeCmd(envFile *string) *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio or http)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *envFile, transport)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "override MCP_TRANSPORT (stdio or http)")
	return cmd
}

func runServe(cmd *cobra.Command, envFile, transport string) error {
	a, err := newApp(envFile, transport, prometheus.DefaultRegisterer)
	if err != nil {
		slog.Error("startup_failed", "error", err)
		return err
	}
	defer a.Close()

	a.logger.Info("mcp_service_starting",
		"version", version,
		"transport", a.cfg.Transport,
		"plan", a.client.Plan(),
		"cache_enabled", a.cfg.CacheEnabled(),
		"prometheus_port", a.cfg.PrometheusPort,
	)

	if a.cfg.PrometheusPort > 0 {
		metricsSrv := startMetricsServer(a.cfg.PrometheusPort, a.logger)
		defer shutdown(metricsSrv, a.logger)
	}

	invoker := mcp.NewToolInvoker(a.dispatcher, version, a.logger)

	if a.cfg.Transport == config.TransportStdio {
		a.logger.Info("mcp_stdio_listening", "tools", len(a.dispatcher.Operations()))
		if err := server.ServeStdio(mcp.NewStdioServer(invoker)); err != nil {
			a.logger.Error("stdio_server_error", "error", err)
			return err
		}
		a.logger.Info("mcp_service_stopped")
		return nil
	}

	return serveHTTP(cmd.Context(), a, invoker)
}

func serveHTTP(ctx context.Context, a *app, invoker *mcp.ToolInvoker) error {
	router := handlers.NewRouter(handlers.RouterConfig{
		Dispatcher: a.dispatcher,
		Invoker:    invoker,
		Health: models.HealthResponse{
			Version: version,
			Plan:    a.client.Plan(),
			Tools:   len(a.dispatcher.Operations()),
			Cache:   a.cfg.CacheEnabled(),
		},
		Timeout: a.cfg.Timeout(),
		Logger:  a.logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: a.cfg.Timeout() + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("mcp_server_listening", "port", a.cfg.Port, "status", "healthy")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		a.logger.Error("server_error", "error", err)
		return err
	case <-ctx.Done():
		a.logger.Info("shutdown_signal_received")
	}

	shutdown(srv, a.logger)
	a.logger.Info("mcp_service_stopped")
	return nil
}

func startMetricsServer(port int, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics_server_listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics_server_error", "error", err)
		}
	}()

	return srv
}

func shutdown(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "addr", srv.Addr, "error", err)
	}
}
