package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"dextools-mcp/internal/dextools"
)

// Argument names shared by every tool.
const (
	ArgChainID = "chain_id"
)

// Role names the address argument an operation takes.
type Role string

const (
	RoleNone    Role = ""
	RolePool    Role = "pool"
	RoleToken   Role = "token"
	RoleFactory Role = "factory"
)

// ArgName is the argument key of the role's address, e.g. "pool_address".
func (r Role) ArgName() string {
	return string(r) + "_address"
}

// ParamType is the JSON Schema type of an optional parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
)

// Param is an optional tool argument with a fixed default.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Default     any
}

// Request is what an operation hands to the remote service once validation
// has passed.
type Request struct {
	Chain   string // canonical
	Address string // as supplied
	Params  Params
	Now     time.Time
}

// Params holds optional arguments with defaults already applied.
type Params map[string]any

// String returns a string parameter.
func (p Params) String(name string) string {
	return cast.ToString(p[name])
}

// Int returns an integer parameter.
func (p Params) Int(name string) int {
	return cast.ToInt(p[name])
}

// Operation describes one tool: its arguments, the remote method it maps
// to and any presentation step applied to a successful response.
type Operation struct {
	Name        string
	Description string
	Chain       bool
	Address     Role
	Params      []Param
	Call        func(ctx context.Context, svc Service, req Request) (dextools.Response, error)
	Annotate    func(dextools.Response) dextools.Response
}

// InputSchema returns the JSON Schema advertised to MCP clients.
func (op *Operation) InputSchema() map[string]interface{} {
	properties := map[string]interface{}{}
	var required []string

	if op.Chain {
		properties[ArgChainID] = map[string]interface{}{
			"type":        "string",
			"description": "Blockchain identifier (e.g. ether, bsc, solana, polygon). Common aliases such as eth or matic are accepted",
		}
		required = append(required, ArgChainID)
	}

	if op.Address != RoleNone {
		properties[op.Address.ArgName()] = map[string]interface{}{
			"type":        "string",
			"description": fmt.Sprintf("Contract address of the %s", op.Address),
		}
		required = append(required, op.Address.ArgName())
	}

	for name, prop := range op.paramProperties() {
		properties[name] = prop
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// paramSchema covers only the optional parameters. chain_id and the address
// are checked separately so their error messages stay stable.
func (op *Operation) paramSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": op.paramProperties(),
	}
}

func (op *Operation) paramProperties() map[string]interface{} {
	properties := make(map[string]interface{}, len(op.Params))
	for _, p := range op.Params {
		prop := map[string]interface{}{
			"type":        string(p.Type),
			"description": p.Description,
			"default":     p.Default,
		}
		if p.Type == TypeInteger {
			prop["minimum"] = 1
		}
		properties[p.Name] = prop
	}
	return properties
}

// resolve applies defaults to the optional parameters in args.
func (op *Operation) resolve(args map[string]any) Params {
	params := make(Params, len(op.Params))
	for _, p := range op.Params {
		v, ok := args[p.Name]
		if !ok || v == nil {
			params[p.Name] = p.Default
			continue
		}
		if p.Type == TypeInteger {
			params[p.Name] = cast.ToInt(v)
			continue
		}
		params[p.Name] = v
	}
	return params
}

// cacheKey identifies a remote call by its resolved inputs. The inputs are
// JSON-encoded so separators inside user values cannot make two calls share
// a key.
func (op *Operation) cacheKey(req Request) string {
	parts := []string{req.Chain, req.Address}
	for _, p := range op.Params {
		parts = append(parts, req.Params.String(p.Name))
	}
	encoded, _ := json.Marshal(parts)
	return op.Name + ":" + string(encoded)
}
