package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/AccumulateNetwork/jsonrpc2/v15"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// defaultRequestTimeout bounds a single RPC call. The health check runs
// inside the container runtime's HEALTHCHECK deadline, so calls must fail
// fast rather than hang on an unresponsive daemon.
const defaultRequestTimeout = 10 * time.Second

// Client talks JSON-RPC to a single node endpoint.
type Client struct {
	// URL is the node's RPC endpoint, e.g. "http://127.0.0.1:22555".
	URL string

	inner jsonrpc2.Client
}

// NewClient creates a client for the node RPC endpoint with basic-auth
// credentials. Empty credentials are allowed for cookie-less regtest
// setups where the node was started with -rpcauth disabled.
func NewClient(url, user, password string) *Client {
	c := &Client{URL: url}
	c.inner.Timeout = defaultRequestTimeout
	if user != "" || password != "" {
		c.inner.BasicAuth = true
		c.inner.User = user
		c.inner.Password = password
	}
	return c
}

// BlockchainInfo is the subset of the node's getblockchaininfo response
// the health check inspects. Field names follow the node's JSON keys.
type BlockchainInfo struct {
	// Chain is the network name as the node reports it
	// ("main", "test", "regtest").
	Chain string `json:"chain"`

	// Blocks is the height of the fully validated chain.
	Blocks int64 `json:"blocks"`

	// Headers is the number of validated headers; runs ahead of Blocks
	// during sync.
	Headers int64 `json:"headers"`

	// BestBlockHash is the hash of the chain tip.
	BestBlockHash string `json:"bestblockhash"`

	// Difficulty is the current proof-of-work difficulty.
	Difficulty float64 `json:"difficulty"`

	// VerificationProgress estimates the fraction of the chain verified,
	// in [0, 1].
	VerificationProgress float64 `json:"verificationprogress"`

	// InitialBlockDownload reports whether the node considers itself
	// still in initial sync.
	InitialBlockDownload bool `json:"initialblockdownload"`

	// Pruned reports whether block pruning is enabled.
	Pruned bool `json:"pruned"`

	// Warnings carries any network or upgrade warnings the node raises.
	Warnings string `json:"warnings"`
}

// GetBlockchainInfo calls the node's getblockchaininfo method.
func (c *Client) GetBlockchainInfo(ctx context.Context) (*BlockchainInfo, error) {
	var info BlockchainInfo
	if err := c.inner.Request(ctx, c.URL, "getblockchaininfo", nil, &info); err != nil {
		return nil, fmt.Errorf("getblockchaininfo against %s failed: %w", c.URL, err)
	}
	return &info, nil
}

// Uptime calls the node's uptime method and returns the daemon's uptime
// in seconds.
func (c *Client) Uptime(ctx context.Context) (int64, error) {
	var seconds int64
	if err := c.inner.Request(ctx, c.URL, "uptime", nil, &seconds); err != nil {
		return 0, fmt.Errorf("uptime against %s failed: %w", c.URL, err)
	}
	return seconds, nil
}

// HealthOptions tunes the health verdict.
type HealthOptions struct {
	// AllowIBD treats a node in initial block download as healthy. Useful
	// for fresh deployments where sync takes days and the container
	// should not be restarted for being behind.
	AllowIBD bool

	// MinProgress is the minimum verification progress for a node outside
	// IBD to count as healthy. Zero means no progress requirement.
	MinProgress float64
}

// CheckHealth turns a BlockchainInfo into a health verdict. An unhealthy
// node yields a CLIError with ExitNodeUnhealthy so the exit code feeds
// straight into the container HEALTHCHECK.
func CheckHealth(info *BlockchainInfo, opts HealthOptions) error {
	if info.InitialBlockDownload && !opts.AllowIBD {
		return model.NewCLIError(
			model.ExitNodeUnhealthy,
			fmt.Sprintf("node is in initial block download (%d/%d blocks, %.1f%% verified)",
				info.Blocks, info.Headers, info.VerificationProgress*100),
		)
	}

	if !info.InitialBlockDownload && info.VerificationProgress < opts.MinProgress {
		return model.NewCLIError(
			model.ExitNodeUnhealthy,
			fmt.Sprintf("verification progress %.4f below required %.4f",
				info.VerificationProgress, opts.MinProgress),
		)
	}

	return nil
}
