package tools

import (
	"context"

	"dextools-mcp/internal/dextools"
)

// Service is the market-data API as seen by the dispatcher. Every method
// receives the canonical chain identifier first. *dextools.Client
// implements it.
type Service interface {
	GetBlockchains(ctx context.Context) (dextools.Response, error)
	GetBlockchain(ctx context.Context, chain string) (dextools.Response, error)

	GetDexes(ctx context.Context, chain string, q dextools.ListQuery) (dextools.Response, error)
	GetDexFactoryInfo(ctx context.Context, chain, address string) (dextools.Response, error)

	GetPools(ctx context.Context, chain string, q dextools.RangeQuery) (dextools.Response, error)
	GetPool(ctx context.Context, chain, address string) (dextools.Response, error)
	GetPoolPrice(ctx context.Context, chain, address string) (dextools.Response, error)
	GetPoolLiquidity(ctx context.Context, chain, address string) (dextools.Response, error)
	GetPoolScore(ctx context.Context, chain, address string) (dextools.Response, error)
	GetPoolLocks(ctx context.Context, chain, address string) (dextools.Response, error)

	GetTokens(ctx context.Context, chain string, q dextools.RangeQuery) (dextools.Response, error)
	GetTokenInfo(ctx context.Context, chain, address string) (dextools.Response, error)
	GetTokenPrice(ctx context.Context, chain, address string) (dextools.Response, error)
	GetTokenScore(ctx context.Context, chain, address string) (dextools.Response, error)
	GetTokenAudit(ctx context.Context, chain, address string) (dextools.Response, error)
	GetTokenLocks(ctx context.Context, chain, address string) (dextools.Response, error)
	GetTokenPools(ctx context.Context, chain, address string, q dextools.RangeQuery) (dextools.Response, error)

	GetRankingHotPools(ctx context.Context, chain string) (dextools.Response, error)
	GetRankingGainers(ctx context.Context, chain string) (dextools.Response, error)
	GetRankingLosers(ctx context.Context, chain string) (dextools.Response, error)
}

var _ Service = (*dextools.Client)(nil)
