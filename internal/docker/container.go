// container.go implements node container lifecycle operations: creating a
// node container with `docker run`, and listing, starting, stopping, and
// removing managed containers through the Docker SDK.
//
// Managed containers are identified by the "dogecoin.managed-by" label,
// which separates them from unrelated containers on the same host.
package docker

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/mmr-tortoise/dogecoin-container/internal/launcher"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// ListManagedNodes queries the Docker daemon for all containers carrying
// the management label and reconstructs a NodeEnv for each from its
// labels. Stopped containers are included — a stopped node still owns its
// data volume and shows up in `ps` and `rm`.
//
// Containers with the management label but broken metadata labels are
// skipped rather than failing the whole listing; one manually mangled
// container should not hide the others.
func ListManagedNodes(ctx context.Context, cli *Client) ([]model.NodeEnv, error) {
	// Filter server-side on the management label instead of listing
	// everything and filtering in Go.
	filterArgs := filters.NewArgs(
		filters.Arg("label", LabelManagedBy+"="+ManagedByValue),
	)

	containers, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"failed to list Docker containers",
			err,
		)
	}

	nodes := make([]model.NodeEnv, 0, len(containers))
	for _, c := range containers {
		env, parseErr := ParseLabels(c.Labels)
		if parseErr != nil {
			continue
		}

		// Runtime state comes from the listing, not from labels.
		env.ContainerID = c.ID
		env.Image = c.Image
		if c.State == "running" {
			env.Status = model.StatusRunning
		} else {
			env.Status = model.StatusStopped
		}
		nodes = append(nodes, *env)
	}

	// Stable ordering for CLI output.
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	return nodes, nil
}

// FindNode returns the managed node with the given name.
// Returns a CLIError with ExitNodeNotFound if no such node exists.
func FindNode(ctx context.Context, cli *Client, name string) (*model.NodeEnv, error) {
	nodes, err := ListManagedNodes(ctx, cli)
	if err != nil {
		return nil, err
	}

	for i := range nodes {
		if nodes[i].Name == name {
			return &nodes[i], nil
		}
	}

	return nil, model.NewCLIError(
		model.ExitNodeNotFound,
		fmt.Sprintf("no managed node named %q (see: dogecoin-container ps)", name),
	)
}

// BuildRunArgs constructs the `docker run` argument list for a node
// container: detached, named, data volume mounted at the image's data
// directory, the network's P2P port published, the RPC port published on
// loopback only, and the dogecoin.* labels applied. The image comes last,
// followed by the network selection arguments for the daemon.
//
// This is a pure function, separated from RunNode so the argument
// construction is testable without a Docker daemon.
func BuildRunArgs(env *model.NodeEnv) []string {
	args := []string{
		"run", "-d",
		"--name", env.Name,
		"-v", env.DataVolume + ":" + launcher.DefaultDataDir,
		"-p", fmt.Sprintf("%d:%d", env.Network.P2PPort(), env.Network.P2PPort()),
		// RPC stays on loopback; exposing it wider is a deliberate,
		// manual decision.
		"-p", fmt.Sprintf("127.0.0.1:%d:%d", env.Network.RPCPort(), env.Network.RPCPort()),
	}

	// Sort label keys so the argument list is deterministic.
	labels := BuildLabels(env)
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--label", k+"="+labels[k])
	}

	args = append(args, env.Image)
	args = append(args, env.Network.DaemonArgs()...)
	return args
}

// RunNode creates and starts a node container with `docker run -d`.
//
// The docker CLI is used here instead of the SDK's ContainerCreate +
// ContainerStart pair because the run flags map one-to-one onto what an
// operator would type by hand, which keeps the behavior easy to reproduce
// and debug outside this tool.
func RunNode(ctx context.Context, env *model.NodeEnv) error {
	cmd := exec.CommandContext(ctx, "docker", BuildRunArgs(env)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("docker run failed for node %q: %s", env.Name, strings.TrimSpace(string(output))),
			err,
		)
	}
	return nil
}

// StartNode starts a stopped node container by ID via the Docker SDK.
func StartNode(ctx context.Context, cli *Client, containerID string) error {
	if err := cli.Inner().ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to start container %q", containerID),
			err,
		)
	}
	return nil
}

// StopNode stops a running node container by ID. A nil timeout uses the
// daemon default (SIGTERM, then SIGKILL after 10 seconds) — dogecoind
// flushes and exits cleanly on SIGTERM well within that.
func StopNode(ctx context.Context, cli *Client, containerID string) error {
	if err := cli.Inner().ContainerStop(ctx, containerID, container.StopOptions{}); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to stop container %q", containerID),
			err,
		)
	}
	return nil
}

// RemoveNode removes a node container by ID. With force, Docker kills a
// running container first. The data volume is never removed here — chain
// data is expensive to resync, so volume removal stays a manual step.
func RemoveNode(ctx context.Context, cli *Client, containerID string, force bool) error {
	if err := cli.Inner().ContainerRemove(ctx, containerID, container.RemoveOptions{Force: force}); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to remove container %q", containerID),
			err,
		)
	}
	return nil
}
