package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"dextools-mcp/internal/cache"
	"dextools-mcp/internal/config"
	"dextools-mcp/internal/dextools"
	"dextools-mcp/internal/instrumentation"
	"dextools-mcp/internal/tools"
)

// app is the wired service shared by every subcommand.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	client     *dextools.Client
	store      *cache.Store
	metrics    *instrumentation.Metrics
	dispatcher *tools.Dispatcher
}

// newApp loads configuration and wires the service. A non-empty transport
// overrides MCP_TRANSPORT.
func newApp(envFile, transport string, reg prometheus.Registerer) (*app, error) {
	cfg, err := config.LoadFromEnv(envFile)
	if err != nil {
		return nil, err
	}
	if transport != "" {
		cfg.Transport = strings.ToLower(transport)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	opts := []dextools.Option{
		dextools.WithTimeout(cfg.RemoteTimeout()),
		dextools.WithLogger(logger),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, dextools.WithBaseURL(cfg.BaseURL))
	}
	client, err := dextools.New(cfg.APIKey, cfg.Plan, opts...)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		metrics: instrumentation.NewMetrics(reg),
	}

	dispatchOpts := []tools.Option{
		tools.WithLogger(logger),
		tools.WithMetrics(a.metrics),
	}
	if cfg.CacheEnabled() {
		store, err := cache.New(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL(), logger)
		if err != nil {
			return nil, fmt.Errorf("response cache: %w", err)
		}
		a.store = store
		dispatchOpts = append(dispatchOpts, tools.WithCache(store))
	}

	a.dispatcher, err = tools.NewDispatcher(client, dispatchOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// newLogger writes JSON to stderr; stdout belongs to the stdio transport.
func newLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
