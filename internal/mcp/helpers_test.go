package mcp

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"dextools-mcp/internal/dextools"
	"dextools-mcp/internal/tools"
)

type upstream struct {
	server *httptest.Server
	hits   atomic.Int32
	path   atomic.Value
}

// newUpstream serves body with status for every request.
func newUpstream(t *testing.T, status int, body string) *upstream {
	t.Helper()

	u := &upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		u.path.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstream) lastPath() string {
	p, _ := u.path.Load().(string)
	return p
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestInvoker(t *testing.T, u *upstream) *ToolInvoker {
	t.Helper()

	client, err := dextools.New("test-key", "trial", dextools.WithBaseURL(u.server.URL), dextools.WithLogger(discardLogger()))
	require.NoError(t, err)

	d, err := tools.NewDispatcher(client, tools.WithLogger(discardLogger()))
	require.NoError(t, err)

	return NewToolInvoker(d, "1.0.0-test", discardLogger())
}
