// Package cli — start.go implements the "dogecoin-container start" command.
//
// The start command restarts a previously stopped node container. The
// container keeps its volume, ports, and labels from when it was created,
// so starting is just a lifecycle transition.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dogecoin-container/internal/docker"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// NewStartCommand creates the "start" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <node-name>",
		Short: "Start a stopped node container",
		Long: `Start a previously stopped Dogecoin node container.

The node resumes with its existing chain data volume and port mappings.

Examples:
  dogecoin-container start mainnet-node`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd.Context(), args[0])
		},
	}

	return cmd
}

// runStart is the main logic function for the start command.
func runStart(ctx context.Context, name string) error {
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

	// Step 3: Starting a running node is a no-op, not an error.
	if node.Status == model.StatusRunning {
		VerboseLog("Node %q is already running", name)
		printLifecycleResult(node, "already running")
		return nil
	}

	// Step 4: Start the container.
	VerboseLog("Starting container %s", shortID(node.ContainerID))
	if err := docker.StartNode(ctx, cli, node.ContainerID); err != nil {
		return err
	}

	node.Status = model.StatusRunning
	printLifecycleResult(node, "started")
	return nil
}

// printLifecycleResult outputs the outcome of a start/stop/rm operation
// in text or JSON format.
func printLifecycleResult(node *model.NodeEnv, action string) {
	if IsJSONOutput() {
		printLifecycleResultJSON(node, action)
		return
	}
	fmt.Printf("Node %q %s (container %s)\n", node.Name, action, shortID(node.ContainerID))
}
