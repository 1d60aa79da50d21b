// Package compose generates a docker-compose.yml for running the packaged
// node image.
//
// The generated file is a convenience for operators who prefer compose over
// `dogecoin-container run`: one node service with the network's well-known
// port mappings, a named data volume mounted at the data directory, and the
// dogecoin.* management labels so the maintenance CLI can discover
// compose-started nodes the same way it discovers SDK-started ones.
package compose

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/dogecoin-container/internal/launcher"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// nodeCompose is the top-level structure of the generated compose file,
// serialized with gopkg.in/yaml.v3.
type nodeCompose struct {
	// Services holds the single node service, keyed by the node name.
	Services map[string]nodeService `yaml:"services"`

	// Volumes declares the named data volume so compose creates it on
	// first up and preserves it across container recreation.
	Volumes map[string]struct{} `yaml:"volumes"`
}

// nodeService is the compose definition for the node container.
type nodeService struct {
	// Image is the packaged node image reference.
	Image string `yaml:"image"`

	// ContainerName pins the container name to the node name, matching
	// what `dogecoin-container run` would create.
	ContainerName string `yaml:"container_name"`

	// Command selects the network via daemon arguments. Empty for
	// mainnet, which is the daemon default — the entrypoint shim adds
	// the -datadir and -printtoconsole defaults itself.
	Command []string `yaml:"command,omitempty"`

	// Restart is the compose restart policy. The entrypoint shim has no
	// supervision of its own, so restarts belong to the runtime.
	Restart string `yaml:"restart"`

	// Ports lists the P2P and RPC port mappings in "host:container" form.
	Ports []string `yaml:"ports"`

	// Volumes mounts the named data volume at the data directory.
	Volumes []string `yaml:"volumes"`

	// Labels carries the dogecoin.* management labels.
	Labels map[string]string `yaml:"labels"`
}

// Generate renders the compose YAML for a node. The labels parameter is
// the dogecoin.* label set built by the docker package; it is passed in
// rather than built here to keep the label schema in one place.
func Generate(name, image string, network model.Network, dataVolume string, labels map[string]string) ([]byte, error) {
	if err := model.ValidateName(name); err != nil {
		return nil, err
	}

	doc := nodeCompose{
		Services: map[string]nodeService{
			name: {
				Image:         image,
				ContainerName: name,
				Command:       network.DaemonArgs(),
				Restart:       "unless-stopped",
				Ports: []string{
					fmt.Sprintf("%d:%d", network.P2PPort(), network.P2PPort()),
					// The RPC port is bound to loopback only — exposing
					// node RPC to the network is never the default.
					fmt.Sprintf("127.0.0.1:%d:%d", network.RPCPort(), network.RPCPort()),
				},
				Volumes: []string{dataVolume + ":" + launcher.DefaultDataDir},
				Labels:  labels,
			},
		},
		Volumes: map[string]struct{}{
			dataVolume: {},
		},
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize compose file: %w", err)
	}

	header := fmt.Sprintf("# Generated by dogecoin-container for node %q (%s).\n# Regenerate with: dogecoin-container compose --network %s %s\n",
		name, network, network, name)
	return append([]byte(header), data...), nil
}

// Write writes the compose YAML to path with 0644 permissions.
func Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write compose file %s: %w", path, err)
	}
	return nil
}
