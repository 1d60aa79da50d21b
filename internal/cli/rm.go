// Package cli — rm.go implements the "dogecoin-container rm" command.
//
// The rm command removes a node container. The chain data volume is
// deliberately left in place: a mainnet resync takes days, so destroying
// the volume stays a separate, manual `docker volume rm`.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dogecoin-container/internal/docker"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// rmFlags holds the flag values for the rm command.
type rmFlags struct {
	force bool // --force: remove even if the node is running
}

// NewRemoveCommand creates the "rm" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRemoveCommand() *cobra.Command {
	flags := &rmFlags{}

	cmd := &cobra.Command{
		Use:   "rm <node-name>",
		Short: "Remove a node container",
		Long: `Remove a Dogecoin node container.

The node's chain data volume is NOT removed; remove it separately with
"docker volume rm" if the data is no longer needed.

A running node is only removed with --force.

Examples:
  dogecoin-container rm mainnet-node
  dogecoin-container rm --force testnet-node`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false,
		"Remove the container even if the node is running")

	return cmd
}

// runRemove is the main logic function for the rm command.
func runRemove(ctx context.Context, name string, flags *rmFlags) error {
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

	// Step 3: Refuse to remove a running node unless forced.
	if node.Status == model.StatusRunning && !flags.force {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("node %q is running; stop it first or use --force", name))
	}

	// Step 4: Remove the container.
	VerboseLog("Removing container %s", shortID(node.ContainerID))
	if err := docker.RemoveNode(ctx, cli, node.ContainerID, flags.force); err != nil {
		return err
	}

	printLifecycleResult(node, "removed")
	if !IsJSONOutput() {
		fmt.Printf("  volume %q kept — remove with: docker volume rm %s\n",
			node.DataVolume, node.DataVolume)
	}
	return nil
}
