package tools

// ErrorKind classifies a failed dispatch for transports that need a status.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnknownTool
	KindValidation
	KindRemote
)

// Result is the outcome of one dispatch: either a payload or an error
// message, never both.
type Result struct {
	Payload map[string]any
	Err     string
	Kind    ErrorKind
}

// Failed reports whether the result carries an error.
func (r Result) Failed() bool {
	return r.Kind != KindNone
}

// Map returns the payload, or {"error": message} on failure.
func (r Result) Map() map[string]any {
	if r.Failed() {
		return map[string]any{"error": r.Err}
	}
	if r.Payload == nil {
		return map[string]any{}
	}
	return r.Payload
}

func success(payload map[string]any) Result {
	return Result{Payload: payload}
}

func failure(kind ErrorKind, message string) Result {
	return Result{Err: message, Kind: kind}
}
