// Package cli — ps.go implements the "dogecoin-container ps" command.
//
// The ps command displays all managed node containers by querying Docker
// for containers with the "dogecoin.managed-by=dogecoin-container" label.
// Nodes are presented as a text table or JSON array, depending on the
// --json flag.
//
// An optional --status flag allows filtering by node lifecycle state
// (running, stopped, or all).
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dogecoin-container/internal/docker"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// psFlags holds the flag values for the ps command.
// These are bound to cobra flags in NewPsCommand.
type psFlags struct {
	// status filters nodes by their lifecycle state.
	// Valid values: "running", "stopped", "all" (default).
	status string
}

// NewPsCommand creates the "ps" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPsCommand() *cobra.Command {
	flags := &psFlags{}

	cmd := &cobra.Command{
		Use:   "ps",
		Short: "List all managed node containers",
		Long: `List all managed Dogecoin node containers and their status.

Each node is shown with its name, network, status, packaged version,
data volume, and container ID.

Examples:
  dogecoin-container ps
  dogecoin-container ps --status running
  dogecoin-container ps --json`,

		// No positional arguments are required for the ps command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPs(cmd.Context(), flags)
		},
	}

	// Register the --status flag with a default value of "all".
	cmd.Flags().StringVar(&flags.status, "status", "all",
		"Filter by status: running, stopped, all (default: all)")

	return cmd
}

// runPs is the main logic function for the ps command.
// It connects to Docker, discovers managed nodes, applies the status
// filter, and outputs results in the appropriate format.
func runPs(ctx context.Context, flags *psFlags) error {
	// Step 1: Validate the --status flag value.
	if flags.status != "all" &&
		flags.status != model.StatusRunning.String() &&
		flags.status != model.StatusStopped.String() {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid status filter %q: valid values are running, stopped, all", flags.status))
	}

	// Step 2: Connect to Docker and verify the daemon is available.
	cli, err := docker.NewClient()
	if err != nil {
		return err // NewClient already returns CLIError with ExitDockerNotRunning
	}
	defer func() { _ = cli.Close() }()

	VerboseLog("Connected to Docker daemon")

	// Step 3: List managed nodes. The listing comes back sorted by name.
	nodes, err := docker.ListManagedNodes(ctx, cli)
	if err != nil {
		return err // ListManagedNodes already returns CLIError
	}
	VerboseLog("Found %d managed node(s)", len(nodes))

	// Step 4: Apply the --status filter if specified.
	if flags.status != "all" {
		filtered := make([]model.NodeEnv, 0, len(nodes))
		for _, node := range nodes {
			if node.Status.String() == flags.status {
				filtered = append(filtered, node)
			}
		}
		nodes = filtered
	}

	// Step 5: Output results in the appropriate format.
	printPsResult(nodes)
	return nil
}

// printPsResult outputs the node list in text or JSON format, depending
// on the global --json flag.
func printPsResult(nodes []model.NodeEnv) {
	if IsJSONOutput() {
		printPsResultJSON(nodes)
	} else {
		printPsResultText(nodes)
	}
}

// psNodeJSON is the JSON output structure for a single node in the ps
// command.
type psNodeJSON struct {
	Name        string `json:"name"`
	Network     string `json:"network"`
	Status      string `json:"status"`
	Version     string `json:"version"`
	DataVolume  string `json:"dataVolume"`
	ContainerID string `json:"containerId"`
	CreatedAt   string `json:"createdAt"`
}

// printPsResultJSON outputs the node list as structured JSON.
// The top-level key is "nodes" containing an array of node objects.
func printPsResultJSON(nodes []model.NodeEnv) {
	type resultJSON struct {
		Nodes []psNodeJSON `json:"nodes"`
	}

	result := resultJSON{
		// Use an empty slice instead of nil to ensure JSON output shows []
		// instead of null when no nodes are found.
		Nodes: make([]psNodeJSON, 0, len(nodes)),
	}

	for _, node := range nodes {
		result.Nodes = append(result.Nodes, psNodeJSON{
			Name:        node.Name,
			Network:     node.Network.String(),
			Status:      node.Status.String(),
			Version:     node.Version,
			DataVolume:  node.DataVolume,
			ContainerID: shortID(node.ContainerID),
			CreatedAt:   node.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printPsResultText outputs the node list as a human-readable text table
// with aligned columns.
//
// The table format is:
//
//	NAME           NETWORK   STATUS    VERSION   VOLUME              CONTAINER
//	mainnet-node   mainnet   running   1.14.9    mainnet-node-data   1a2b3c4d5e6f
func printPsResultText(nodes []model.NodeEnv) {
	if len(nodes) == 0 {
		fmt.Println("No managed nodes found.")
		return
	}

	// Print header row.
	fmt.Printf("%-20s %-9s %-9s %-9s %-22s %s\n",
		"NAME", "NETWORK", "STATUS", "VERSION", "VOLUME", "CONTAINER")

	for _, node := range nodes {
		// Print one row per node with fixed-width columns.
		fmt.Printf("%-20s %-9s %-9s %-9s %-22s %s\n",
			node.Name,
			node.Network.String(),
			node.Status.String(),
			node.Version,
			node.DataVolume,
			shortID(node.ContainerID),
		)
	}
}
