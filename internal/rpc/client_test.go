package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcRequest mirrors the JSON-RPC request envelope the client sends. The
// ID is kept raw so the test server can echo it back unchanged.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
}

// newNodeStub starts an httptest server that answers JSON-RPC calls with
// canned results per method name. It records basic-auth credentials of
// the last request into the provided pointers when they are non-nil.
func newNodeStub(t *testing.T, results map[string]interface{}, gotUser, gotPass *string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotUser != nil {
			user, pass, _ := r.BasicAuth()
			*gotUser = user
			*gotPass = pass
		}

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, ok := results[req.Method]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "Method not found"},
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestGetBlockchainInfo verifies the response decodes into BlockchainInfo
// and that basic-auth credentials reach the server.
func TestGetBlockchainInfo(t *testing.T) {
	var gotUser, gotPass string
	srv := newNodeStub(t, map[string]interface{}{
		"getblockchaininfo": map[string]interface{}{
			"chain":                "test",
			"blocks":               4937000,
			"headers":              4937200,
			"bestblockhash":        "00000000a1b2c3",
			"difficulty":           12345.678,
			"verificationprogress": 0.9999,
			"initialblockdownload": false,
			"pruned":               false,
			"warnings":             "",
		},
	}, &gotUser, &gotPass)

	client := NewClient(srv.URL, "rpcuser", "rpcpass")
	info, err := client.GetBlockchainInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test", info.Chain)
	assert.Equal(t, int64(4937000), info.Blocks)
	assert.Equal(t, int64(4937200), info.Headers)
	assert.InDelta(t, 0.9999, info.VerificationProgress, 1e-9)
	assert.False(t, info.InitialBlockDownload)

	assert.Equal(t, "rpcuser", gotUser)
	assert.Equal(t, "rpcpass", gotPass)
}

// TestGetBlockchainInfo_MethodError verifies a JSON-RPC error response
// surfaces as a Go error rather than a zero-valued result.
func TestGetBlockchainInfo_MethodError(t *testing.T) {
	srv := newNodeStub(t, nil, nil, nil)

	client := NewClient(srv.URL, "", "")
	_, err := client.GetBlockchainInfo(context.Background())
	assert.Error(t, err)
}

// TestUptime verifies the uptime result decodes as seconds.
func TestUptime(t *testing.T) {
	srv := newNodeStub(t, map[string]interface{}{"uptime": 86400}, nil, nil)

	client := NewClient(srv.URL, "", "")
	seconds, err := client.Uptime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(86400), seconds)
}

// TestGetBlockchainInfo_Unreachable verifies connection failures come back
// as errors instead of hanging.
func TestGetBlockchainInfo_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", "")
	_, err := client.GetBlockchainInfo(context.Background())
	assert.Error(t, err)
}
