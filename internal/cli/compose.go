// Package cli — compose.go implements the "dogecoin-container compose" command.
//
// The compose command generates a docker-compose.yml for a single node,
// for operators who prefer Compose files over `dogecoin-container run`.
// The generated file carries the same dogecoin.* labels as directly run
// containers, so `ps`, `stop`, and `rm` see Compose-managed nodes too.
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dogecoin-container/internal/compose"
	"github.com/mmr-tortoise/dogecoin-container/internal/docker"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// defaultNodeVersion is the Dogecoin Core release the current image line
// packages. Kept in sync with manifest.jsonc on a release bump.
const defaultNodeVersion = "1.14.9"

// defaultImage returns the node image reference used when --image is not
// given. It names the image this repository's Dockerfile builds.
func defaultImage() string {
	return "dogecoin-container:" + defaultNodeVersion
}

// composeFlags holds the flag values for the compose command.
type composeFlags struct {
	network string // --network: node network (mainnet, testnet, regtest)
	image   string // --image: container image reference
	volume  string // --volume: named volume for chain data
	output  string // --output: file to write, "-" for stdout
}

// NewComposeCommand creates the "compose" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewComposeCommand() *cobra.Command {
	flags := &composeFlags{}

	cmd := &cobra.Command{
		Use:   "compose <node-name>",
		Short: "Generate a docker-compose.yml for a node",
		Long: `Generate a Compose file describing one node container: image, network
ports (RPC bound to loopback only), a named volume for chain data, and
the management labels that make the node visible to ps/stop/rm.

Examples:
  dogecoin-container compose mainnet-node
  dogecoin-container compose --network testnet --output testnet.yml testnet-node
  dogecoin-container compose --output - regtest-node --network regtest`,

		// Args validates that exactly one positional argument (node name)
		// is provided.
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.network, "network", "mainnet",
		"Node network: mainnet, testnet, regtest")
	cmd.Flags().StringVar(&flags.image, "image", defaultImage(),
		"Container image for the node")
	cmd.Flags().StringVar(&flags.volume, "volume", "",
		"Named volume for chain data (default: <node-name>-data)")
	cmd.Flags().StringVar(&flags.output, "output", "docker-compose.yml",
		`File to write ("-" for stdout)`)

	return cmd
}

// runCompose is the main logic function for the compose command.
func runCompose(name string, flags *composeFlags) error {
	// Step 1: Validate inputs.
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

	// Step 2: Build the label set the node container will carry.
	env := &model.NodeEnv{
		Name:       name,
		Network:    network,
		Image:      flags.image,
		Version:    defaultNodeVersion,
		DataVolume: volume,
		CreatedAt:  time.Now().UTC(),
	}
	labels := docker.BuildLabels(env)

	// Step 3: Generate the Compose YAML.
	data, err := compose.Generate(name, flags.image, network, volume, labels)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to generate Compose file", err)
	}

	// Step 4: Write to stdout or the output file.
	if flags.output == "-" {
		fmt.Print(string(data))
		return nil
	}

	if err := compose.Write(flags.output, data); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write Compose file", err)
	}

	if IsJSONOutput() {
		printComposeResultJSON(flags.output, env)
	} else {
		fmt.Printf("Wrote %s (%s node %q, P2P %d, RPC 127.0.0.1:%d)\n",
			flags.output, network, name, network.P2PPort(), network.RPCPort())
	}
	return nil
}

// printComposeResultJSON outputs the compose result as structured JSON.
func printComposeResultJSON(path string, env *model.NodeEnv) {
	type resultJSON struct {
		File    string `json:"file"`
		Name    string `json:"name"`
		Network string `json:"network"`
		Image   string `json:"image"`
		Volume  string `json:"volume"`
		P2PPort int    `json:"p2pPort"`
		RPCPort int    `json:"rpcPort"`
	}

	result := resultJSON{
		File:    path,
		Name:    env.Name,
		Network: env.Network.String(),
		Image:   env.Image,
		Volume:  env.DataVolume,
		P2PPort: env.Network.P2PPort(),
		RPCPort: env.Network.RPCPort(),
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}
