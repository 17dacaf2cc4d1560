package dextools

import (
	"context"
	"net/url"
	"strconv"
)

// ListQuery carries the sort and paging parameters of listing endpoints.
type ListQuery struct {
	Order    string
	Sort     string
	Page     int
	PageSize int
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}

// RangeQuery is a ListQuery restricted to a creation time window.
type RangeQuery struct {
	From string
	To   string
	ListQuery
}

func (q RangeQuery) values() url.Values {
	v := q.ListQuery.values()
	v.Set("from", q.From)
	v.Set("to", q.To)
	return v
}

// GetBlockchains lists the blockchains known to DEXTools.
func (c *Client) GetBlockchains(ctx context.Context) (Response, error) {
	return c.get(ctx, []string{"blockchain"}, nil)
}

// GetBlockchain returns metadata for one chain.
func (c *Client) GetBlockchain(ctx context.Context, chain string) (Response, error) {
	return c.get(ctx, []string{"blockchain", chain}, nil)
}

// GetDexes lists the exchanges indexed on a chain.
func (c *Client) GetDexes(ctx context.Context, chain string, q ListQuery) (Response, error) {
	return c.get(ctx, []string{"dex", chain}, q.values())
}

// GetDexFactoryInfo returns a DEX factory contract.
func (c *Client) GetDexFactoryInfo(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"dex", chain, address}, nil)
}

// GetPools lists pools created within a time window.
func (c *Client) GetPools(ctx context.Context, chain string, q RangeQuery) (Response, error) {
	return c.get(ctx, []string{"pool", chain}, q.values())
}

func (c *Client) GetPool(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"pool", chain, address}, nil)
}

func (c *Client) GetPoolPrice(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"pool", chain, address, "price"}, nil)
}

func (c *Client) GetPoolLiquidity(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"pool", chain, address, "liquidity"}, nil)
}

func (c *Client) GetPoolScore(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"pool", chain, address, "score"}, nil)
}

func (c *Client) GetPoolLocks(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"pool", chain, address, "locks"}, nil)
}

// GetTokens lists tokens created within a time window.
func (c *Client) GetTokens(ctx context.Context, chain string, q RangeQuery) (Response, error) {
	return c.get(ctx, []string{"token", chain}, q.values())
}

// GetToken returns the basic token record. No tool exposes it; get_token_details
// uses GetTokenInfo.
func (c *Client) GetToken(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"token", chain, address}, nil)
}

func (c *Client) GetTokenInfo(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"token", chain, address, "info"}, nil)
}

func (c *Client) GetTokenPrice(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"token", chain, address, "price"}, nil)
}

func (c *Client) GetTokenScore(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"token", chain, address, "score"}, nil)
}

func (c *Client) GetTokenAudit(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"token", chain, address, "audit"}, nil)
}

func (c *Client) GetTokenLocks(ctx context.Context, chain, address string) (Response, error) {
	return c.get(ctx, []string{"token", chain, address, "locks"}, nil)
}

// GetTokenPools lists the pools trading a token within a time window.
func (c *Client) GetTokenPools(ctx context.Context, chain, address string, q RangeQuery) (Response, error) {
	return c.get(ctx, []string{"token", chain, address, "pools"}, q.values())
}

// GetRankingHotPools returns the trending pools of a chain.
func (c *Client) GetRankingHotPools(ctx context.Context, chain string) (Response, error) {
	return c.get(ctx, []string{"ranking", chain, "hotpools"}, nil)
}

func (c *Client) GetRankingGainers(ctx context.Context, chain string) (Response, error) {
	return c.get(ctx, []string{"ranking", chain, "gainers"}, nil)
}

func (c *Client) GetRankingLosers(ctx context.Context, chain string) (Response, error) {
	return c.get(ctx, []string{"ranking", chain, "losers"}, nil)
}
