package tools

import (
	"reflect"

	"dextools-mcp/internal/dextools"
)

const (
	poolLockMessage = "No liquidity locks found for this pool. This is normal - most pools don't have locked liquidity."
	poolLockNote    = "Liquidity locks are a security feature where developers lock their liquidity to prevent 'rug pulls'. Most pools don't have this feature."

	tokenLockMessage = "No token locks found for this token. This is normal - most tokens don't have locked allocations."
	tokenLockNote    = "Token locks are a security feature where team tokens or allocations are locked to prevent market dumps. Most tokens don't have this feature."
)

// annotateLocks rewrites a lock response whose "data" is present but empty
// into an explanatory payload. Absence of locks is the common case.
func annotateLocks(message, note string) func(dextools.Response) dextools.Response {
	return func(resp dextools.Response) dextools.Response {
		data, ok := resp["data"]
		if !ok || !isFalsy(data) {
			return resp
		}

		out := make(dextools.Response, len(resp)+1)
		for k, v := range resp {
			out[k] = v
		}
		out["message"] = message
		out["data"] = map[string]any{
			"hasLocks": false,
			"note":     note,
		}
		return out
	}
}

// isFalsy reports nil, zero values and empty collections.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}
