package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dextools-mcp/internal/dextools"
	"dextools-mcp/internal/instrumentation"
)

var (
	evmAddress    = "0x" + strings.Repeat("1", 40)
	solanaAddress = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func newTestDispatcher(t *testing.T, svc Service, opts ...Option) *Dispatcher {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d, err := NewDispatcher(svc, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return d
}

func addressOperations(d *Dispatcher) []*Operation {
	var out []*Operation
	for _, op := range d.Operations() {
		if op.Address != RoleNone {
			out = append(out, op)
		}
	}
	return out
}

func TestDispatchUnsupportedChainShortCircuits(t *testing.T) {
	svc := newRecordingService(dextools.Response{"data": "unused"})
	d := newTestDispatcher(t, svc)

	ops := addressOperations(d)
	require.NotEmpty(t, ops)

	for _, op := range ops {
		t.Run(op.Name, func(t *testing.T) {
			res := d.Dispatch(context.Background(), op.Name, map[string]any{
				ArgChainID:          "not-a-real-chain",
				op.Address.ArgName(): evmAddress,
			})

			assert.Equal(t, map[string]any{"error": "Unsupported chain_id: not-a-real-chain"}, res.Map())
			assert.Equal(t, KindValidation, res.Kind)
		})
	}

	assert.Empty(t, svc.Calls())
}

func TestDispatchInvalidAddressShortCircuits(t *testing.T) {
	svc := newRecordingService(dextools.Response{})
	d := newTestDispatcher(t, svc)

	for _, op := range addressOperations(d) {
		t.Run(op.Name, func(t *testing.T) {
			res := d.Dispatch(context.Background(), op.Name, map[string]any{
				ArgChainID:          "ether",
				op.Address.ArgName(): "0xbad",
			})

			require.True(t, res.Failed())
			assert.Equal(t, "Invalid "+string(op.Address)+" address format: 0xbad", res.Err)
		})
	}

	assert.Empty(t, svc.Calls())
}

func TestDispatchNormalizesChainAndKeepsAddress(t *testing.T) {
	svc := newRecordingService(dextools.Response{"statusCode": 200, "data": map[string]any{"id": "pool"}})
	d := newTestDispatcher(t, svc)

	res := d.Dispatch(context.Background(), "get_pool_details", map[string]any{
		"chain_id":     "eth",
		"pool_address": evmAddress,
	})

	require.False(t, res.Failed(), res.Err)
	assert.Equal(t, map[string]any{"id": "pool"}, res.Map()["data"])
	assert.Equal(t, []recordedCall{{Method: "GetPool", Args: []any{"ether", evmAddress}}}, svc.Calls())
}

func TestDispatchSolanaToken(t *testing.T) {
	svc := newRecordingService(dextools.Response{"data": map[string]any{"isHoneypot": "no"}})
	d := newTestDispatcher(t, svc)

	res := d.Dispatch(context.Background(), "get_token_security_audit", map[string]any{
		"chain_id":      "SOL",
		"token_address": solanaAddress,
	})

	require.False(t, res.Failed(), res.Err)
	assert.Equal(t, []recordedCall{{Method: "GetTokenAudit", Args: []any{"solana", solanaAddress}}}, svc.Calls())

	res = d.Dispatch(context.Background(), "get_token_security_audit", map[string]any{
		"chain_id":      "solana",
		"token_address": evmAddress,
	})
	assert.Equal(t, "Invalid token address format: "+evmAddress, res.Err)
	assert.Len(t, svc.Calls(), 1)
}

func TestDispatchArgumentTypes(t *testing.T) {
	svc := newRecordingService(dextools.Response{})
	d := newTestDispatcher(t, svc)

	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"missing chain", "get_trending_pools", map[string]any{}, "Unsupported chain_id: "},
		{"numeric chain", "get_trending_pools", map[string]any{"chain_id": 1}, "Unsupported chain_id: 1"},
		{"missing address", "get_token_price", map[string]any{"chain_id": "bsc"}, "Invalid token address format: "},
		{"numeric address", "get_token_price", map[string]any{"chain_id": "bsc", "token_address": 42}, "Invalid token address format: 42"},
		{"empty address", "get_dex_factory_details", map[string]any{"chain_id": "bsc", "factory_address": ""}, "Invalid factory address format: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Dispatch(context.Background(), tt.tool, tt.args)
			assert.Equal(t, tt.want, res.Err)
			assert.Equal(t, KindValidation, res.Kind)
		})
	}

	assert.Empty(t, svc.Calls())
}

func TestDispatchInvalidOptionalParams(t *testing.T) {
	svc := newRecordingService(dextools.Response{})
	d := newTestDispatcher(t, svc)

	for _, args := range []map[string]any{
		{"chain_id": "ether", "page": "two"},
		{"chain_id": "ether", "page": 0},
		{"chain_id": "ether", "page_size": 1.5},
		{"chain_id": "ether", "order": 7},
	} {
		res := d.Dispatch(context.Background(), "get_dex_list_on_chain", args)
		assert.True(t, strings.HasPrefix(res.Err, "Invalid arguments: "), "args %v gave %q", args, res.Err)
	}

	assert.Empty(t, svc.Calls())
}

func TestDispatchAppliesDefaults(t *testing.T) {
	svc := newRecordingService(dextools.Response{"data": []any{}})
	d := newTestDispatcher(t, svc)

	res := d.Dispatch(context.Background(), "find_new_pools_in_range", map[string]any{"chain_id": "ether"})
	require.False(t, res.Failed(), res.Err)

	res = d.Dispatch(context.Background(), "find_new_tokens_in_range", map[string]any{
		"chain_id":  "bsc",
		"order":     "desc",
		"page":      float64(3),
		"page_size": 25,
	})
	require.False(t, res.Failed(), res.Err)

	res = d.Dispatch(context.Background(), "get_dex_list_on_chain", map[string]any{"chain_id": "matic"})
	require.False(t, res.Failed(), res.Err)

	calls := svc.Calls()
	require.Len(t, calls, 3)

	assert.Equal(t, recordedCall{Method: "GetPools", Args: []any{"ether", dextools.RangeQuery{
		From: DefaultFromDate, To: DefaultToDate,
		ListQuery: dextools.ListQuery{Order: "asc", Sort: "creationTime", Page: 1, PageSize: 100},
	}}}, calls[0])

	assert.Equal(t, recordedCall{Method: "GetTokens", Args: []any{"bsc", dextools.RangeQuery{
		From: DefaultFromDate, To: DefaultToDate,
		ListQuery: dextools.ListQuery{Order: "desc", Sort: "socialsInfoUpdated", Page: 3, PageSize: 25},
	}}}, calls[1])

	assert.Equal(t, recordedCall{Method: "GetDexes", Args: []any{"polygon", dextools.ListQuery{
		Order: "asc", Sort: "name", Page: 1, PageSize: 100,
	}}}, calls[2])
}

func TestDispatchTokenPoolsEmptyDatesUseCurrentYear(t *testing.T) {
	svc := newRecordingService(dextools.Response{"data": []any{}})
	clock := func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	d := newTestDispatcher(t, svc, WithClock(clock))

	res := d.Dispatch(context.Background(), "get_all_pools_for_token", map[string]any{
		"chain_id":      "ether",
		"token_address": evmAddress,
		"from_date":     "",
		"to_date":       "",
	})
	require.False(t, res.Failed(), res.Err)

	res = d.Dispatch(context.Background(), "get_all_pools_for_token", map[string]any{
		"chain_id":      "ether",
		"token_address": evmAddress,
	})
	require.False(t, res.Failed(), res.Err)

	calls := svc.Calls()
	require.Len(t, calls, 2)

	q := calls[0].Args[2].(dextools.RangeQuery)
	assert.Equal(t, "2026-01-01T00:00:00", q.From)
	assert.Equal(t, "2026-12-31T23:59:59", q.To)

	q = calls[1].Args[2].(dextools.RangeQuery)
	assert.Equal(t, DefaultFromDate, q.From)
	assert.Equal(t, DefaultToDate, q.To)
	assert.Equal(t, "creationTime", q.Sort)
}

func TestDispatchSupportedBlockchainsTakesNoChain(t *testing.T) {
	svc := newRecordingService(dextools.Response{"data": []any{"ether"}})
	d := newTestDispatcher(t, svc)

	res := d.Dispatch(context.Background(), "get_supported_blockchains", nil)
	require.False(t, res.Failed(), res.Err)
	assert.Equal(t, []recordedCall{{Method: "GetBlockchains"}}, svc.Calls())
}

func TestDispatchRemoteErrorBecomesToolError(t *testing.T) {
	svc := newRecordingService(nil)
	svc.err = &dextools.APIError{StatusCode: 429, Body: "Too Many Requests"}
	d := newTestDispatcher(t, svc)

	res := d.Dispatch(context.Background(), "get_top_gainers", map[string]any{"chain_id": "ether"})

	assert.Equal(t, map[string]any{"error": "dextools api 429: Too Many Requests"}, res.Map())
	assert.Equal(t, KindRemote, res.Kind)
	assert.Len(t, svc.Calls(), 1)
}

func TestDispatchRecoversPanics(t *testing.T) {
	svc := newRecordingService(nil)
	svc.panicVal = "boom"
	d := newTestDispatcher(t, svc)

	var res Result
	require.NotPanics(t, func() {
		res = d.Dispatch(context.Background(), "get_top_losers", map[string]any{"chain_id": "ether"})
	})
	assert.Equal(t, map[string]any{"error": "boom"}, res.Map())
}

func TestDispatchUnknownTool(t *testing.T) {
	svc := newRecordingService(nil)
	d := newTestDispatcher(t, svc)

	res := d.Dispatch(context.Background(), "get_everything", map[string]any{})
	assert.Equal(t, map[string]any{"error": "Unknown tool: get_everything"}, res.Map())
	assert.Equal(t, KindUnknownTool, res.Kind)
}

func TestDispatchNilPayloadIsEmptyMap(t *testing.T) {
	svc := newRecordingService(nil)
	d := newTestDispatcher(t, svc)

	res := d.Dispatch(context.Background(), "get_blockchain_info", map[string]any{"chain_id": "base"})
	require.False(t, res.Failed())
	assert.Equal(t, map[string]any{}, res.Map())
}

func TestDispatchLockAnnotation(t *testing.T) {
	tests := []struct {
		tool string
		role Role
	}{
		{"get_pool_liquidity_locks", RolePool},
		{"get_token_locks", RoleToken},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			svc := newRecordingService(dextools.Response{"statusCode": 200, "data": map[string]any{}})
			d := newTestDispatcher(t, svc)

			res := d.Dispatch(context.Background(), tt.tool, map[string]any{
				"chain_id":          "ether",
				tt.role.ArgName(): evmAddress,
			})
			require.False(t, res.Failed(), res.Err)

			payload := res.Map()
			assert.NotEmpty(t, payload["message"])
			assert.Equal(t, 200, payload["statusCode"])
			data, ok := payload["data"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, false, data["hasLocks"])
			assert.NotEmpty(t, data["note"])

			svc.response = dextools.Response{"data": map[string]any{"some": "lock"}}
			res = d.Dispatch(context.Background(), tt.tool, map[string]any{
				"chain_id":          "ether",
				tt.role.ArgName(): evmAddress,
			})
			assert.Equal(t, map[string]any{"data": map[string]any{"some": "lock"}}, res.Map())
		})
	}
}

func TestDispatchCache(t *testing.T) {
	svc := newRecordingService(dextools.Response{"data": map[string]any{"price": 1.0}})
	cache := newMemoryCache()
	metrics := instrumentation.NewMetrics(prometheus.NewRegistry())
	d := newTestDispatcher(t, svc, WithCache(cache), WithMetrics(metrics))

	args := map[string]any{"chain_id": "ethereum", "pool_address": evmAddress}
	first := d.Dispatch(context.Background(), "get_pool_price", args)
	second := d.Dispatch(context.Background(), "get_pool_price", map[string]any{"chain_id": "ether", "pool_address": evmAddress})

	require.False(t, first.Failed())
	assert.Equal(t, first.Map(), second.Map())
	assert.Len(t, svc.Calls(), 1)
	assert.Contains(t, cache.values, `get_pool_price:["ether","`+evmAddress+`"]`)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("get_pool_price", instrumentation.OutcomeSuccess)))
}

func TestDispatchCacheSkipsFailures(t *testing.T) {
	svc := newRecordingService(nil)
	svc.err = errors.New("connection reset")
	cache := newMemoryCache()
	d := newTestDispatcher(t, svc, WithCache(cache))

	args := map[string]any{"chain_id": "bsc"}
	d.Dispatch(context.Background(), "get_trending_pools", args)
	d.Dispatch(context.Background(), "get_trending_pools", args)

	assert.Len(t, svc.Calls(), 2)
	assert.Empty(t, cache.values)
}

func TestDispatchCacheKeysDoNotCollide(t *testing.T) {
	svc := newRecordingService(dextools.Response{"data": []any{}})
	cache := newMemoryCache()
	d := newTestDispatcher(t, svc, WithCache(cache))

	first := d.Dispatch(context.Background(), "find_new_pools_in_range", map[string]any{
		"chain_id":  "ether",
		"from_date": "a:b",
		"to_date":   "c",
	})
	second := d.Dispatch(context.Background(), "find_new_pools_in_range", map[string]any{
		"chain_id":  "ether",
		"from_date": "a",
		"to_date":   "b:c",
	})
	require.False(t, first.Failed(), first.Err)
	require.False(t, second.Failed(), second.Err)

	calls := svc.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "a:b", calls[0].Args[1].(dextools.RangeQuery).From)
	assert.Equal(t, "b:c", calls[1].Args[1].(dextools.RangeQuery).To)
	assert.Len(t, cache.values, 2)
}

func TestDispatchCacheReadErrorFallsThrough(t *testing.T) {
	svc := newRecordingService(dextools.Response{"data": []any{1}})
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	d := newTestDispatcher(t, svc, WithCache(cache))

	res := d.Dispatch(context.Background(), "get_trending_pools", map[string]any{"chain_id": "bsc"})
	assert.False(t, res.Failed())
	assert.Len(t, svc.Calls(), 1)
}

func TestDispatchRecordsRejections(t *testing.T) {
	svc := newRecordingService(nil)
	metrics := instrumentation.NewMetrics(prometheus.NewRegistry())
	d := newTestDispatcher(t, svc, WithMetrics(metrics))

	d.Dispatch(context.Background(), "get_pool_score", map[string]any{"chain_id": "nope", "pool_address": evmAddress})
	d.Dispatch(context.Background(), "get_pool_score", map[string]any{"chain_id": "ether", "pool_address": "nope"})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ValidationReject.WithLabelValues("get_pool_score", "unsupported_chain")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ValidationReject.WithLabelValues("get_pool_score", "invalid_address")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("get_pool_score", instrumentation.OutcomeRejected)))
}

func TestDispatchConcurrent(t *testing.T) {
	svc := newRecordingService(dextools.Response{"data": map[string]any{}})
	d := newTestDispatcher(t, svc, WithCache(newMemoryCache()))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chain := "ether"
			if i%2 == 0 {
				chain = "not-a-real-chain"
			}
			d.Dispatch(context.Background(), "get_token_locks", map[string]any{
				"chain_id":      chain,
				"token_address": evmAddress,
			})
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, len(svc.Calls()), 1)
	assert.LessOrEqual(t, len(svc.Calls()), 16)
}
