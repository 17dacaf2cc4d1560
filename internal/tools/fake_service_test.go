package tools

import (
	"context"
	"sync"

	"dextools-mcp/internal/dextools"
)

type recordedCall struct {
	Method string
	Args   []any
}

// recordingService is a Service stand-in that records every call and
// answers with a fixed response or error.
type recordingService struct {
	mu       sync.Mutex
	calls    []recordedCall
	response dextools.Response
	err      error
	panicVal any
}

func newRecordingService(resp dextools.Response) *recordingService {
	return &recordingService{response: resp}
}

func (s *recordingService) record(method string, args ...any) (dextools.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, recordedCall{Method: method, Args: args})
	s.mu.Unlock()

	if s.panicVal != nil {
		panic(s.panicVal)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *recordingService) Calls() []recordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]recordedCall, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *recordingService) GetBlockchains(ctx context.Context) (dextools.Response, error) {
	return s.record("GetBlockchains")
}

func (s *recordingService) GetBlockchain(ctx context.Context, chain string) (dextools.Response, error) {
	return s.record("GetBlockchain", chain)
}

func (s *recordingService) GetDexes(ctx context.Context, chain string, q dextools.ListQuery) (dextools.Response, error) {
	return s.record("GetDexes", chain, q)
}

func (s *recordingService) GetDexFactoryInfo(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetDexFactoryInfo", chain, address)
}

func (s *recordingService) GetPools(ctx context.Context, chain string, q dextools.RangeQuery) (dextools.Response, error) {
	return s.record("GetPools", chain, q)
}

func (s *recordingService) GetPool(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetPool", chain, address)
}

func (s *recordingService) GetPoolPrice(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetPoolPrice", chain, address)
}

func (s *recordingService) GetPoolLiquidity(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetPoolLiquidity", chain, address)
}

func (s *recordingService) GetPoolScore(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetPoolScore", chain, address)
}

func (s *recordingService) GetPoolLocks(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetPoolLocks", chain, address)
}

func (s *recordingService) GetTokens(ctx context.Context, chain string, q dextools.RangeQuery) (dextools.Response, error) {
	return s.record("GetTokens", chain, q)
}

func (s *recordingService) GetTokenInfo(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetTokenInfo", chain, address)
}

func (s *recordingService) GetTokenPrice(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetTokenPrice", chain, address)
}

func (s *recordingService) GetTokenScore(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetTokenScore", chain, address)
}

func (s *recordingService) GetTokenAudit(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetTokenAudit", chain, address)
}

func (s *recordingService) GetTokenLocks(ctx context.Context, chain, address string) (dextools.Response, error) {
	return s.record("GetTokenLocks", chain, address)
}

func (s *recordingService) GetTokenPools(ctx context.Context, chain, address string, q dextools.RangeQuery) (dextools.Response, error) {
	return s.record("GetTokenPools", chain, address, q)
}

func (s *recordingService) GetRankingHotPools(ctx context.Context, chain string) (dextools.Response, error) {
	return s.record("GetRankingHotPools", chain)
}

func (s *recordingService) GetRankingGainers(ctx context.Context, chain string) (dextools.Response, error) {
	return s.record("GetRankingGainers", chain)
}

func (s *recordingService) GetRankingLosers(ctx context.Context, chain string) (dextools.Response, error) {
	return s.record("GetRankingLosers", chain)
}

// memoryCache is an in-process ResponseCache.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]map[string]any
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]map[string]any{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}
