package mcp

import (
	"errors"
	"fmt"
	"net/http"

	"dextools-mcp/internal/tools"
)

// FormatMCPError converts an error into a JSON-RPC error object.
func FormatMCPError(err error) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	return &RPCError{
		Code:    InternalError,
		Message: fmt.Sprintf("Internal error: %s", err.Error()),
	}
}

// HTTPStatusFromResult maps a dispatch outcome to an HTTP status code for
// the REST surface.
func HTTPStatusFromResult(res tools.Result) int {
	switch res.Kind {
	case tools.KindNone:
		return http.StatusOK
	case tools.KindUnknownTool:
		return http.StatusNotFound
	case tools.KindValidation:
		return http.StatusBadRequest
	case tools.KindRemote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
