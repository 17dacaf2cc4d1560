package models

// ErrorResponse is the body of HTTP errors raised outside tool dispatch.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Plan    string `json:"plan"`
	Tools   int    `json:"tools"`
	Cache   bool   `json:"cache"`
}

// ChainsResponse lists the accepted chain identifiers.
type ChainsResponse struct {
	Supported []string          `json:"supported"`
	Aliases   map[string]string `json:"aliases"`
}

// ToolDescriptor describes a tool on the REST surface.
type ToolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolsResponse is returned by GET /tools.
type ToolsResponse struct {
	Tools []ToolDescriptor `json:"tools"`
}
