// Package chains holds the static blockchain identifier tables and the
// address syntax checks applied before any market-data call is made.
package chains

import (
	"sort"
	"strings"
)

// Canonical chain identifiers as understood by the DEXTools API.
const (
	Ether     = "ether"
	BSC       = "bsc"
	Polygon   = "polygon"
	Arbitrum  = "arbitrum"
	Optimism  = "optimism"
	Avalanche = "avalanche"
	Solana    = "solana"
	Base      = "base"
	Fantom    = "fantom"
	Cronos    = "cronos"
	Moonbeam  = "moonbeam"
	Moonriver = "moonriver"
	Harmony   = "harmony"
	Celo      = "celo"
	Gnosis    = "gnosis"
)

// supportedChains is the set of canonical tokens. Read-only after init.
var supportedChains = map[string]struct{}{
	Ether:     {},
	BSC:       {},
	Polygon:   {},
	Arbitrum:  {},
	Optimism:  {},
	Avalanche: {},
	Solana:    {},
	Base:      {},
	Fantom:    {},
	Cronos:    {},
	Moonbeam:  {},
	Moonriver: {},
	Harmony:   {},
	Celo:      {},
	Gnosis:    {},
}

// chainAliases maps user-facing variants to canonical tokens.
// Every value must be a key of supportedChains (single hop).
var chainAliases = map[string]string{
	"ethereum":            Ether,
	"eth":                 Ether,
	"binance-smart-chain": BSC,
	"binance":             BSC,
	"matic":               Polygon,
	"arbitrum-one":        Arbitrum,
	"op":                  Optimism,
	"avax":                Avalanche,
	"sol":                 Solana,
	"ftm":                 Fantom,
	"cro":                 Cronos,
	"glmr":                Moonbeam,
	"movr":                Moonriver,
	"one":                 Harmony,
	"xdai":                Gnosis,
}

// Normalize maps a user supplied chain identifier to its canonical token.
//
// The input is lower-cased first. Tokens already in the supported set are
// returned as-is and take precedence over the alias table; known aliases are
// translated; anything else comes back lower-cased but otherwise untouched.
// Normalize never fails, so callers decide supportedness with IsSupported.
func Normalize(raw string) string {
	token := strings.ToLower(raw)

	if _, ok := supportedChains[token]; ok {
		return token
	}

	if canonical, ok := chainAliases[token]; ok {
		return canonical
	}

	return token
}

// IsSupported reports whether raw normalizes to a supported chain.
func IsSupported(raw string) bool {
	_, ok := supportedChains[Normalize(raw)]
	return ok
}

// Supported returns the canonical chain tokens in sorted order.
func Supported() []string {
	out := make([]string, 0, len(supportedChains))
	for chain := range supportedChains {
		out = append(out, chain)
	}
	sort.Strings(out)
	return out
}

// Aliases returns a copy of the alias table.
func Aliases() map[string]string {
	out := make(map[string]string, len(chainAliases))
	for alias, canonical := range chainAliases {
		out[alias] = canonical
	}
	return out
}
