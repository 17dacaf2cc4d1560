package tools

import (
	"context"
	"fmt"

	"dextools-mcp/internal/dextools"
)

// Default search window and paging, matching the public tool contract.
const (
	DefaultFromDate = "2024-01-01T00:00:00"
	DefaultToDate   = "2024-12-31T23:59:59"
	DefaultOrder    = "asc"
	DefaultPage     = 1
	DefaultPageSize = 100
)

const (
	paramFromDate = "from_date"
	paramToDate   = "to_date"
	paramOrder    = "order"
	paramSort     = "sort"
	paramPage     = "page"
	paramPageSize = "page_size"
)

func fromDateParam() Param {
	return Param{Name: paramFromDate, Type: TypeString, Default: DefaultFromDate,
		Description: "Start of the search window (YYYY-MM-DDTHH:MM:SS)"}
}

func toDateParam() Param {
	return Param{Name: paramToDate, Type: TypeString, Default: DefaultToDate,
		Description: "End of the search window (YYYY-MM-DDTHH:MM:SS)"}
}

func listParams(sort string) []Param {
	return []Param{
		{Name: paramOrder, Type: TypeString, Default: DefaultOrder, Description: "Sort order: asc or desc"},
		{Name: paramSort, Type: TypeString, Default: sort, Description: "Field to sort by"},
		{Name: paramPage, Type: TypeInteger, Default: DefaultPage, Description: "Page number"},
		{Name: paramPageSize, Type: TypeInteger, Default: DefaultPageSize, Description: "Results per page"},
	}
}

func listQuery(p Params) dextools.ListQuery {
	return dextools.ListQuery{
		Order:    p.String(paramOrder),
		Sort:     p.String(paramSort),
		Page:     p.Int(paramPage),
		PageSize: p.Int(paramPageSize),
	}
}

func rangeQuery(p Params) dextools.RangeQuery {
	return dextools.RangeQuery{
		From:      p.String(paramFromDate),
		To:        p.String(paramToDate),
		ListQuery: listQuery(p),
	}
}

type chainMethod func(Service, context.Context, string) (dextools.Response, error)

type addressMethod func(Service, context.Context, string, string) (dextools.Response, error)

func chainOp(name, description string, method chainMethod) *Operation {
	return &Operation{
		Name:        name,
		Description: description,
		Chain:       true,
		Call: func(ctx context.Context, svc Service, req Request) (dextools.Response, error) {
			return method(svc, ctx, req.Chain)
		},
	}
}

func addressOp(name, description string, role Role, method addressMethod) *Operation {
	return &Operation{
		Name:        name,
		Description: description,
		Chain:       true,
		Address:     role,
		Call: func(ctx context.Context, svc Service, req Request) (dextools.Response, error) {
			return method(svc, ctx, req.Chain, req.Address)
		},
	}
}

// Registry returns the operations exposed as tools, in listing order.
func Registry() []*Operation {
	poolLocks := addressOp("get_pool_liquidity_locks",
		"Retrieves locked liquidity for a trading pair, a key signal when assessing rug-pull risk. Most pools have no locks; an empty result is normal.",
		RolePool, Service.GetPoolLocks)
	poolLocks.Annotate = annotateLocks(poolLockMessage, poolLockNote)

	tokenLocks := addressOp("get_token_locks",
		"Retrieves locked token allocations (team, rewards) to help assess the risk of large sell-offs. Most tokens have no locks; an empty result is normal.",
		RoleToken, Service.GetTokenLocks)
	tokenLocks.Annotate = annotateLocks(tokenLockMessage, tokenLockNote)

	return []*Operation{
		chainOp("get_trending_pools",
			"Lists the hot pairs currently trending on a blockchain.",
			Service.GetRankingHotPools),
		chainOp("get_top_gainers",
			"Lists the tokens with the largest positive price change on a blockchain.",
			Service.GetRankingGainers),
		chainOp("get_top_losers",
			"Lists the tokens with the largest negative price change on a blockchain.",
			Service.GetRankingLosers),

		addressOp("get_pool_details",
			"Retrieves metadata for a liquidity pool: exchange, tokens and creation details.",
			RolePool, Service.GetPool),
		addressOp("get_pool_price",
			"Gets real-time price information for a trading pair.",
			RolePool, Service.GetPoolPrice),
		addressOp("get_pool_liquidity",
			"Gets current liquidity for a pool, including total value locked.",
			RolePool, Service.GetPoolLiquidity),
		addressOp("get_pool_score",
			"Gets the DEXTools score of a pool.",
			RolePool, Service.GetPoolScore),

		addressOp("get_token_security_audit",
			"Returns the contract audit of a token: honeypot checks, verified source and buy/sell taxes.",
			RoleToken, Service.GetTokenAudit),
		addressOp("get_token_details",
			"Retrieves token information such as supply and holder counts.",
			RoleToken, Service.GetTokenInfo),
		{
			Name:        "get_all_pools_for_token",
			Description: "Lists every liquidity pool trading a token within a creation time window.",
			Chain:       true,
			Address:     RoleToken,
			Params:      []Param{fromDateParam(), toDateParam()},
			Call:        callTokenPools,
		},
		addressOp("get_token_score",
			"Gets the DEXTools score of a token.",
			RoleToken, Service.GetTokenScore),
		addressOp("get_token_price",
			"Gets current price information for a token.",
			RoleToken, Service.GetTokenPrice),

		chainOp("get_blockchain_info",
			"Gets information about a blockchain.",
			Service.GetBlockchain),
		{
			Name:        "get_supported_blockchains",
			Description: "Lists every blockchain supported by DEXTools.",
			Call: func(ctx context.Context, svc Service, _ Request) (dextools.Response, error) {
				return svc.GetBlockchains(ctx)
			},
		},

		poolLocks,
		tokenLocks,

		{
			Name:        "find_new_pools_in_range",
			Description: "Finds liquidity pools created within a time window on a blockchain.",
			Chain:       true,
			Params:      append([]Param{fromDateParam(), toDateParam()}, listParams("creationTime")...),
			Call: func(ctx context.Context, svc Service, req Request) (dextools.Response, error) {
				return svc.GetPools(ctx, req.Chain, rangeQuery(req.Params))
			},
		},
		{
			Name:        "find_new_tokens_in_range",
			Description: "Finds token contracts created within a time window, including tokens without liquidity yet.",
			Chain:       true,
			Params:      append([]Param{fromDateParam(), toDateParam()}, listParams("socialsInfoUpdated")...),
			Call: func(ctx context.Context, svc Service, req Request) (dextools.Response, error) {
				return svc.GetTokens(ctx, req.Chain, rangeQuery(req.Params))
			},
		},
		{
			Name:        "get_dex_list_on_chain",
			Description: "Lists the decentralized exchanges indexed on a blockchain.",
			Chain:       true,
			Params:      listParams("name"),
			Call: func(ctx context.Context, svc Service, req Request) (dextools.Response, error) {
				return svc.GetDexes(ctx, req.Chain, listQuery(req.Params))
			},
		},
		addressOp("get_dex_factory_details",
			"Retrieves the factory contract of a DEX, which creates its trading pairs.",
			RoleFactory, Service.GetDexFactoryInfo),
	}
}

// callTokenPools replaces an explicitly empty date bound with the current
// calendar year.
func callTokenPools(ctx context.Context, svc Service, req Request) (dextools.Response, error) {
	from := req.Params.String(paramFromDate)
	to := req.Params.String(paramToDate)

	year := req.Now.Year()
	if from == "" {
		from = fmt.Sprintf("%d-01-01T00:00:00", year)
	}
	if to == "" {
		to = fmt.Sprintf("%d-12-31T23:59:59", year)
	}

	return svc.GetTokenPools(ctx, req.Chain, req.Address, dextools.RangeQuery{
		From:      from,
		To:        to,
		ListQuery: dextools.ListQuery{Order: DefaultOrder, Sort: "creationTime"},
	})
}
