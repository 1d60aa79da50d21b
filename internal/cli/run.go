// Package cli — run.go implements the "dogecoin-container run" command.
//
// The run command is the primary node-operation entry point. It creates
// and starts one node container: validated name, chosen network, a named
// volume for chain data, P2P port published, RPC port bound to loopback,
// and the dogecoin.* labels that make the node visible to ps/stop/rm.
//
// Orchestration steps:
//  1. Validate the node name and network
//  2. Connect to Docker and verify the daemon is available
//  3. Refuse duplicate node names
//  4. docker run the labeled container
//  5. Optionally wait for the RPC port to answer
//  6. Output results (text or JSON)
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dogecoin-container/internal/docker"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
	"github.com/mmr-tortoise/dogecoin-container/internal/rpc"
)

// runFlags holds the flag values for the run command.
// These are bound to cobra flags in NewRunCommand.
type runFlags struct {
	network string // --network: node network (mainnet, testnet, regtest)
	image   string // --image: container image reference
	volume  string // --volume: named volume for chain data
	wait    bool   // --wait: block until the RPC port answers
}

// waitForRPCTimeout bounds how long --wait blocks for the daemon to bind
// its RPC port after the container starts.
const waitForRPCTimeout = 60 * time.Second

// NewRunCommand creates the "run" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <node-name>",
		Short: "Create and start a node container",
		Long: `Create and start a Dogecoin node container.

The container gets a named volume for chain data, the network's P2P port
published on all interfaces, the RPC port published on loopback only, and
management labels so that ps/stop/rm can find it later.

Examples:
  dogecoin-container run mainnet-node
  dogecoin-container run --network testnet testnet-node
  dogecoin-container run --network regtest --wait regtest-node`,

		// Args validates that exactly one positional argument (node name)
		// is provided.
		Args: cobra.ExactArgs(1),

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.network, "network", "mainnet",
		"Node network: mainnet, testnet, regtest")
	cmd.Flags().StringVar(&flags.image, "image", defaultImage(),
		"Container image for the node")
	cmd.Flags().StringVar(&flags.volume, "volume", "",
		"Named volume for chain data (default: <node-name>-data)")
	cmd.Flags().BoolVar(&flags.wait, "wait", false,
		"Wait until the node's RPC port accepts connections")

	return cmd
}

// runRun is the main orchestration function for the run command.
func runRun(ctx context.Context, name string, flags *runFlags) error {
	// Step 1: Validate inputs before touching Docker.
	if err := model.ValidateName(name); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid node name", err)
	}

	network, err := model.ParseNetwork(flags.network)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid network", err)
	}

	volume := flags.volume
	if volume == "" {
		volume = name + "-data"
	}

	// Step 2: Connect to Docker and verify the daemon is available.
	cli, err := docker.NewClient()
	if err != nil {
		return err // NewClient already returns CLIError with ExitDockerNotRunning
	}
	// defer ensures the Docker client is closed when this function returns,
	// releasing the underlying HTTP connection and resources.
	defer func() { _ = cli.Close() }()

	VerboseLog("Connected to Docker daemon")

	// Step 3: Refuse duplicate names. FindNode returning ExitNodeNotFound
	// is the good case here.
	if existing, findErr := docker.FindNode(ctx, cli, name); findErr == nil {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("node %q already exists (container %s)", name, shortID(existing.ContainerID)))
	} else if cliErr, ok := findErr.(*model.CLIError); !ok || cliErr.Code != model.ExitNodeNotFound {
		return findErr
	}

	// Step 4: Run the container.
	env := &model.NodeEnv{
		Name:       name,
		Network:    network,
		Image:      flags.image,
		Version:    defaultNodeVersion,
		DataVolume: volume,
		Status:     model.StatusRunning,
		CreatedAt:  time.Now().UTC(),
	}

	VerboseLog("Starting %s node %q from image %s", network, name, flags.image)
	if err := docker.RunNode(ctx, env); err != nil {
		return err
	}

	// Step 5: Optionally wait for the loopback-published RPC port.
	if flags.wait {
		VerboseLog("Waiting for RPC port %d...", network.RPCPort())
		waitCtx, cancel := context.WithTimeout(ctx, waitForRPCTimeout)
		defer cancel()

		if err := rpc.WaitForPort(waitCtx, "127.0.0.1", network.RPCPort()); err != nil {
			return model.WrapCLIError(model.ExitNodeUnhealthy,
				fmt.Sprintf("node %q started but RPC port %d never answered", name, network.RPCPort()), err)
		}
		VerboseLog("RPC port is answering")
	}

	// Step 6: Output results.
	printRunResult(env)
	return nil
}

// shortID truncates a container ID to the 12-character form Docker shows.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// printRunResult outputs the run command results in text or JSON format.
func printRunResult(env *model.NodeEnv) {
	if IsJSONOutput() {
		type resultJSON struct {
			Name    string `json:"name"`
			Network string `json:"network"`
			Image   string `json:"image"`
			Volume  string `json:"volume"`
			Status  string `json:"status"`
			P2PPort int    `json:"p2pPort"`
			RPCPort int    `json:"rpcPort"`
		}

		result := resultJSON{
			Name:    env.Name,
			Network: env.Network.String(),
			Image:   env.Image,
			Volume:  env.DataVolume,
			Status:  env.Status.String(),
			P2PPort: env.Network.P2PPort(),
			RPCPort: env.Network.RPCPort(),
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Started %s node %q\n", env.Network, env.Name)
	fmt.Printf("  Image:   %s\n", env.Image)
	fmt.Printf("  Volume:  %s\n", env.DataVolume)
	fmt.Printf("  P2P:     %d\n", env.Network.P2PPort())
	fmt.Printf("  RPC:     127.0.0.1:%d\n", env.Network.RPCPort())
}
