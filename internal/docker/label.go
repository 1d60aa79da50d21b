package docker

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// Label keys used to persist node metadata on containers. Labels are the
// sole persistence mechanism — a NodeEnv is fully reconstructable from
// `docker inspect` output, and there is no state file to drift out of
// sync with the containers.
//
// All keys share the "dogecoin." prefix to namespace them away from labels
// set by other tools.
const (
	// LabelPrefix is the common prefix for all management labels.
	LabelPrefix = "dogecoin."

	// LabelManagedBy identifies containers managed by this tool.
	// Key: "dogecoin.managed-by", value: always ManagedByValue.
	LabelManagedBy = LabelPrefix + "managed-by"

	// LabelName stores the node's unique name.
	LabelName = LabelPrefix + "name"

	// LabelNetwork stores which Dogecoin network the node joins.
	LabelNetwork = LabelPrefix + "network"

	// LabelVersion stores the packaged Dogecoin Core release version.
	LabelVersion = LabelPrefix + "version"

	// LabelDataVolume stores the named Docker volume holding the data
	// directory.
	LabelDataVolume = LabelPrefix + "data-volume"

	// LabelCreatedAt stores the RFC3339 creation timestamp.
	LabelCreatedAt = LabelPrefix + "created-at"
)

// ManagedByValue is the constant value of LabelManagedBy for containers
// created by this tool. It is the filter key for discovery.
const ManagedByValue = "dogecoin-container"

// BuildLabels constructs the label map for a node container from its
// NodeEnv. Applied at container creation; ParseLabels is the inverse.
func BuildLabels(env *model.NodeEnv) map[string]string {
	return map[string]string{
		LabelManagedBy:  ManagedByValue,
		LabelName:       env.Name,
		LabelNetwork:    env.Network.String(),
		LabelVersion:    env.Version,
		LabelDataVolume: env.DataVolume,
		// UTC keeps timestamps comparable regardless of host timezone.
		LabelCreatedAt: env.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ParseLabels reconstructs a NodeEnv from a container's labels.
//
// Required labels: managed-by, name, network, version, data-volume,
// created-at. Status and ContainerID are runtime state, filled in by the
// caller from the container listing rather than from labels.
func ParseLabels(labels map[string]string) (*model.NodeEnv, error) {
	requiredKeys := []string{
		LabelManagedBy,
		LabelName,
		LabelNetwork,
		LabelVersion,
		LabelDataVolume,
		LabelCreatedAt,
	}

	// Collect all missing keys at once so a mislabeled container yields
	// one complete diagnostic.
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := labels[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required Docker labels: %s", strings.Join(missing, ", "))
	}

	if labels[LabelManagedBy] != ManagedByValue {
		return nil, fmt.Errorf("label %s has unexpected value %q (expected %q)",
			LabelManagedBy, labels[LabelManagedBy], ManagedByValue)
	}

	network, err := model.ParseNetwork(labels[LabelNetwork])
	if err != nil {
		return nil, fmt.Errorf("invalid label %s: %w", LabelNetwork, err)
	}

	createdAt, err := time.Parse(time.RFC3339, labels[LabelCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("invalid label %s: %w", LabelCreatedAt, err)
	}

	return &model.NodeEnv{
		Name:       labels[LabelName],
		Network:    network,
		Version:    labels[LabelVersion],
		DataVolume: labels[LabelDataVolume],
		CreatedAt:  createdAt,
	}, nil
}
