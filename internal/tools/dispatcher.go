// Package tools maps tool invocations onto DEXTools API calls.
//
// Every tool goes through the same path: chain check, address check,
// optional parameter check, then a single remote call. Failures of any kind
// come back as a Result carrying an error message; nothing panics or
// returns an error past Dispatch.
package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dextools-mcp/internal/chains"
	"dextools-mcp/internal/dextools"
	"dextools-mcp/internal/instrumentation"
)

// ResponseCache stores successful responses keyed by their resolved inputs.
type ResponseCache interface {
	Get(ctx context.Context, key string) (map[string]any, bool, error)
	Set(ctx context.Context, key string, value map[string]any) error
}

// Dispatcher validates tool arguments and forwards them to the Service.
// It is safe for concurrent use.
type Dispatcher struct {
	service    Service
	operations []*Operation
	byName     map[string]*Operation
	validators map[string]*SchemaValidator

	cache   ResponseCache
	metrics *instrumentation.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCache enables response caching.
func WithCache(cache ResponseCache) Option {
	return func(d *Dispatcher) {
		d.cache = cache
	}
}

// WithMetrics records call outcomes.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = metrics
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithClock overrides the time source used for date defaults.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// NewDispatcher builds a dispatcher over the full tool registry.
func NewDispatcher(service Service, opts ...Option) (*Dispatcher, error) {
	return newDispatcher(service, Registry(), opts...)
}

func newDispatcher(service Service, operations []*Operation, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		service:    service,
		operations: operations,
		byName:     make(map[string]*Operation, len(operations)),
		validators: make(map[string]*SchemaValidator, len(operations)),
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "dispatcher")

	for _, op := range operations {
		if _, dup := d.byName[op.Name]; dup {
			return nil, fmt.Errorf("duplicate tool %q", op.Name)
		}
		validator, err := NewSchemaValidator(op.paramSchema())
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", op.Name, err)
		}
		d.byName[op.Name] = op
		d.validators[op.Name] = validator
	}

	return d, nil
}

// Operations returns the registered operations in listing order.
func (d *Dispatcher) Operations() []*Operation {
	out := make([]*Operation, len(d.operations))
	copy(out, d.operations)
	return out
}

// Lookup returns the operation registered under name.
func (d *Dispatcher) Lookup(name string) (*Operation, bool) {
	op, ok := d.byName[name]
	return op, ok
}

// Dispatch runs the named tool with args.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) Result {
	op, ok := d.byName[name]
	if !ok {
		d.metrics.RecordToolCall("unknown", instrumentation.OutcomeRejected)
		return failure(KindUnknownTool, fmt.Sprintf("Unknown tool: %s", name))
	}
	if args == nil {
		args = map[string]any{}
	}

	req, rejected := d.prepare(op, args)
	if rejected != nil {
		d.metrics.RecordToolCall(op.Name, instrumentation.OutcomeRejected)
		d.logger.InfoContext(ctx, "tool_rejected", "tool_name", op.Name, "error", rejected.Err)
		return *rejected
	}

	return d.execute(ctx, op, req)
}

// prepare runs the local checks in order and builds the remote request.
func (d *Dispatcher) prepare(op *Operation, args map[string]any) (Request, *Result) {
	var chainID string
	if op.Chain {
		raw := args[ArgChainID]
		s, ok := raw.(string)
		if !ok || !chains.IsSupported(s) {
			d.metrics.RecordRejection(op.Name, "unsupported_chain")
			r := failure(KindValidation, fmt.Sprintf("Unsupported chain_id: %s", display(raw)))
			return Request{}, &r
		}
		chainID = s
	}

	var address string
	if op.Address != RoleNone {
		raw := args[op.Address.ArgName()]
		s, ok := raw.(string)
		if !ok || !chains.ValidAddress(s, chainID) {
			d.metrics.RecordRejection(op.Name, "invalid_address")
			r := failure(KindValidation, fmt.Sprintf("Invalid %s address format: %s", op.Address, display(raw)))
			return Request{}, &r
		}
		address = s
	}

	if err := d.validators[op.Name].Validate(args); err != nil {
		d.metrics.RecordRejection(op.Name, "invalid_arguments")
		r := failure(KindValidation, fmt.Sprintf("Invalid arguments: %s", err.Error()))
		return Request{}, &r
	}

	return Request{
		Chain:   chains.Normalize(chainID),
		Address: address,
		Params:  op.resolve(args),
		Now:     d.now(),
	}, nil
}

func (d *Dispatcher) execute(ctx context.Context, op *Operation, req Request) Result {
	key := op.cacheKey(req)
	if cached, ok := d.lookup(ctx, key); ok {
		d.metrics.RecordToolCall(op.Name, instrumentation.OutcomeSuccess)
		return success(cached)
	}

	start := time.Now()
	resp, err := d.call(ctx, op, req)
	latency := time.Since(start)
	d.metrics.RecordRemoteLatency(op.Name, float64(latency.Milliseconds()))

	if err != nil {
		d.metrics.RecordToolCall(op.Name, instrumentation.OutcomeRemoteError)
		d.logger.ErrorContext(ctx, "remote_call_failed",
			"tool_name", op.Name,
			"chain_id", req.Chain,
			"address", req.Address,
			"latency_ms", latency.Milliseconds(),
			"error", err,
		)
		return failure(KindRemote, err.Error())
	}

	if op.Annotate != nil {
		resp = op.Annotate(resp)
	}

	d.store(ctx, key, resp)
	d.metrics.RecordToolCall(op.Name, instrumentation.OutcomeSuccess)
	d.logger.InfoContext(ctx, "remote_call_succeeded",
		"tool_name", op.Name,
		"chain_id", req.Chain,
		"address", req.Address,
		"latency_ms", latency.Milliseconds(),
	)

	return success(resp)
}

// call invokes the remote method, converting a panic into an error.
func (d *Dispatcher) call(ctx context.Context, op *Operation, req Request) (resp dextools.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return op.Call(ctx, d.service, req)
}

func (d *Dispatcher) lookup(ctx context.Context, key string) (map[string]any, bool) {
	if d.cache == nil {
		return nil, false
	}

	value, ok, err := d.cache.Get(ctx, key)
	switch {
	case err != nil:
		d.metrics.RecordCacheLookup("error")
		d.logger.WarnContext(ctx, "cache_read_failed", "cache_key", key, "error", err)
		return nil, false
	case !ok:
		d.metrics.RecordCacheLookup("miss")
		return nil, false
	}

	d.metrics.RecordCacheLookup("hit")
	return value, true
}

func (d *Dispatcher) store(ctx context.Context, key string, value map[string]any) {
	if d.cache == nil || value == nil {
		return
	}
	if err := d.cache.Set(ctx, key, value); err != nil {
		d.logger.WarnContext(ctx, "cache_write_failed", "cache_key", key, "error", err)
	}
}

// display renders a raw argument for error messages; a missing argument
// renders as the empty string.
func display(raw any) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}
