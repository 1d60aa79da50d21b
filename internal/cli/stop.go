// Package cli — stop.go implements the "dogecoin-container stop" command.
//
// The stop command stops a running node container. Docker sends SIGTERM
// first, which dogecoind handles by flushing its databases and shutting
// down cleanly; SIGKILL only follows after the daemon-side grace period.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dogecoin-container/internal/docker"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// NewStopCommand creates the "stop" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop <node-name>",
		Short: "Stop a running node container",
		Long: `Stop a running Dogecoin node container.

The node's chain data volume is kept; the node can be started again with
"dogecoin-container start".

Examples:
  dogecoin-container stop mainnet-node`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStop(cmd.Context(), args[0])
		},
	}

	return cmd
}

// runStop is the main logic function for the stop command.
func runStop(ctx context.Context, name string) error {
	// Step 1: Connect to Docker and verify the daemon is available.
	cli, err := docker.NewClient()
	if err != nil {
		return err // NewClient already returns CLIError with ExitDockerNotRunning
	}
	defer func() { _ = cli.Close() }()

	// Step 2: Find the node by name.
	node, err := docker.FindNode(ctx, cli, name)
	if err != nil {
		return err // FindNode returns CLIError with ExitNodeNotFound
	}

	// Step 3: Stopping a stopped node is a no-op, not an error.
	if node.Status == model.StatusStopped {
		VerboseLog("Node %q is already stopped", name)
		printLifecycleResult(node, "already stopped")
		return nil
	}

	// Step 4: Stop the container. dogecoind flushes on SIGTERM, so the
	// default Docker grace period is enough for a clean shutdown.
	VerboseLog("Stopping container %s", shortID(node.ContainerID))
	if err := docker.StopNode(ctx, cli, node.ContainerID); err != nil {
		return err
	}

	node.Status = model.StatusStopped
	printLifecycleResult(node, "stopped")
	return nil
}

// printLifecycleResultJSON outputs a lifecycle operation result as
// structured JSON.
func printLifecycleResultJSON(node *model.NodeEnv, action string) {
	type resultJSON struct {
		Name        string `json:"name"`
		Action      string `json:"action"`
		Status      string `json:"status"`
		ContainerID string `json:"containerId"`
	}

	result := resultJSON{
		Name:        node.Name,
		Action:      action,
		Status:      node.Status.String(),
		ContainerID: shortID(node.ContainerID),
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}
