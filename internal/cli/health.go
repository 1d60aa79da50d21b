// Package cli — health.go implements the "dogecoin-container health"
// command.
//
// The health command asks a node over RPC whether it is serving and
// synced. It doubles as the image HEALTHCHECK: the exit code carries the
// verdict (0 healthy, 7 unhealthy), so the container runtime can read it
// directly without parsing output.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
	"github.com/mmr-tortoise/dogecoin-container/internal/rpc"
)

// RPC credential environment variables. The HEALTHCHECK inside the image
// has no flags to speak of, so credentials come from the container
// environment.
const (
	// EnvRPCUser overrides the RPC username.
	EnvRPCUser = "DOGECOIN_RPC_USER"

	// EnvRPCPassword overrides the RPC password.
	EnvRPCPassword = "DOGECOIN_RPC_PASSWORD"
)

// healthFlags holds the flag values for the health command.
// These are bound to cobra flags in NewHealthCommand.
type healthFlags struct {
	url         string  // --rpc-url: explicit RPC endpoint
	network     string  // --network: derive the default endpoint from the network
	user        string  // --rpc-user: RPC username
	password    string  // --rpc-password: RPC password
	allowIBD    bool    // --allow-ibd: treat a syncing node as healthy
	minProgress float64 // --min-progress: required verification progress
	wait        bool    // --wait: block until the RPC port answers first
}

// NewHealthCommand creates the "health" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewHealthCommand() *cobra.Command {
	flags := &healthFlags{}

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check a node's health over RPC",
		Long: `Check whether a Dogecoin node is serving RPC and synced.

The node is healthy when it answers getblockchaininfo, is not in initial
block download (unless --allow-ibd), and meets the verification progress
threshold. An unhealthy node makes the command exit with code 7, which
the container HEALTHCHECK consumes directly.

RPC credentials come from --rpc-user/--rpc-password or the
DOGECOIN_RPC_USER/DOGECOIN_RPC_PASSWORD environment variables.

Examples:
  dogecoin-container health
  dogecoin-container health --network testnet --allow-ibd
  dogecoin-container health --rpc-url http://127.0.0.1:22555 --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.url, "rpc-url", "",
		"Node RPC endpoint (default: derived from --network on loopback)")
	cmd.Flags().StringVar(&flags.network, "network", "mainnet",
		"Node network, used to derive the default RPC endpoint")
	cmd.Flags().StringVar(&flags.user, "rpc-user", "",
		"RPC username (default: $"+EnvRPCUser+")")
	cmd.Flags().StringVar(&flags.password, "rpc-password", "",
		"RPC password (default: $"+EnvRPCPassword+")")
	cmd.Flags().BoolVar(&flags.allowIBD, "allow-ibd", false,
		"Treat a node in initial block download as healthy")
	cmd.Flags().Float64Var(&flags.minProgress, "min-progress", 0.999,
		"Minimum verification progress for a synced node")
	cmd.Flags().BoolVar(&flags.wait, "wait", false,
		"Wait for the RPC port to accept connections before checking")

	return cmd
}

// runHealth is the main logic function for the health command.
func runHealth(ctx context.Context, flags *healthFlags) error {
	// Step 1: Resolve the RPC endpoint.
	network, err := model.ParseNetwork(flags.network)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid network", err)
	}

	url := flags.url
	if url == "" {
		url = fmt.Sprintf("http://127.0.0.1:%d", network.RPCPort())
	}
	VerboseLog("RPC endpoint: %s", url)

	// Step 2: Resolve credentials, flags first, environment second.
	user := flags.user
	if user == "" {
		user = os.Getenv(EnvRPCUser)
	}
	password := flags.password
	if password == "" {
		password = os.Getenv(EnvRPCPassword)
	}

	// Step 3: Optionally wait for the port before issuing RPC calls, so a
	// freshly started container isn't reported unhealthy while the daemon
	// is still binding its sockets.
	if flags.wait {
		waitCtx, cancel := context.WithTimeout(ctx, waitForRPCTimeout)
		defer cancel()
		if err := rpc.WaitForPort(waitCtx, "127.0.0.1", network.RPCPort()); err != nil {
			return model.WrapCLIError(model.ExitNodeUnhealthy, "RPC port never answered", err)
		}
	}

	// Step 4: Query the node.
	client := rpc.NewClient(url, user, password)

	info, err := client.GetBlockchainInfo(ctx)
	if err != nil {
		// A node that doesn't answer RPC at all is unhealthy, not a
		// generic error — the HEALTHCHECK relies on the exit code.
		return model.WrapCLIError(model.ExitNodeUnhealthy, "node did not answer RPC", err)
	}
	VerboseLog("Node reports chain=%s blocks=%d headers=%d progress=%.4f ibd=%v",
		info.Chain, info.Blocks, info.Headers, info.VerificationProgress, info.InitialBlockDownload)

	// Uptime is informational only; a node that answers
	// getblockchaininfo but not uptime is still judged on sync state.
	uptime, uptimeErr := client.Uptime(ctx)
	if uptimeErr != nil {
		VerboseLog("uptime call failed: %v", uptimeErr)
	}

	// Step 5: Judge health.
	healthErr := rpc.CheckHealth(info, rpc.HealthOptions{
		AllowIBD:    flags.allowIBD,
		MinProgress: flags.minProgress,
	})

	printHealthResult(info, uptime, healthErr)
	return healthErr
}

// printHealthResult outputs the health verdict and node state in text or
// JSON format. The verdict also travels in the exit code; the output is
// for humans and log collectors.
func printHealthResult(info *rpc.BlockchainInfo, uptime int64, healthErr error) {
	if IsJSONOutput() {
		type resultJSON struct {
			Healthy              bool    `json:"healthy"`
			Reason               string  `json:"reason,omitempty"`
			Chain                string  `json:"chain"`
			Blocks               int64   `json:"blocks"`
			Headers              int64   `json:"headers"`
			VerificationProgress float64 `json:"verificationProgress"`
			InitialBlockDownload bool    `json:"initialBlockDownload"`
			UptimeSeconds        int64   `json:"uptimeSeconds,omitempty"`
			Warnings             string  `json:"warnings,omitempty"`
		}

		result := resultJSON{
			Healthy:              healthErr == nil,
			Chain:                info.Chain,
			Blocks:               info.Blocks,
			Headers:              info.Headers,
			VerificationProgress: info.VerificationProgress,
			InitialBlockDownload: info.InitialBlockDownload,
			UptimeSeconds:        uptime,
			Warnings:             info.Warnings,
		}
		if healthErr != nil {
			if cliErr, ok := healthErr.(*model.CLIError); ok {
				result.Reason = cliErr.Message
			} else {
				result.Reason = healthErr.Error()
			}
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	verdict := "healthy"
	if healthErr != nil {
		verdict = "unhealthy"
	}
	fmt.Printf("Node is %s\n", verdict)
	fmt.Printf("  Chain:     %s\n", info.Chain)
	fmt.Printf("  Blocks:    %d / %d headers\n", info.Blocks, info.Headers)
	fmt.Printf("  Progress:  %.4f\n", info.VerificationProgress)
	fmt.Printf("  IBD:       %v\n", info.InitialBlockDownload)
	if uptime > 0 {
		fmt.Printf("  Uptime:    %s\n", FormatUptime(uptime))
	}
	if info.Warnings != "" {
		fmt.Printf("  Warnings:  %s\n", info.Warnings)
	}
}

// FormatUptime converts an uptime in seconds to a compact
// days/hours/minutes string.
//
// This function is exported for testing purposes (tested in
// health_test.go).
//
// Example:
//
//	90061 → "1d 1h 1m"
//	3660  → "1h 1m"
//	59    → "59s"
func FormatUptime(seconds int64) string {
	d := time.Duration(seconds) * time.Second

	days := int64(d.Hours()) / 24
	hours := int64(d.Hours()) % 24
	minutes := int64(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
