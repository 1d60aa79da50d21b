package docker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// testNodeEnv returns a fully populated NodeEnv for label tests.
func testNodeEnv() *model.NodeEnv {
	return &model.NodeEnv{
		Name:       "mainnet-node",
		Network:    model.NetworkMainnet,
		Image:      "dogecoin:1.14.9",
		Version:    "1.14.9",
		DataVolume: "dogecoin-data",
		CreatedAt:  time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}
}

// TestBuildLabels verifies the full label set is produced with the
// management marker and RFC3339 UTC timestamp.
func TestBuildLabels(t *testing.T) {
	labels := BuildLabels(testNodeEnv())

	assert.Equal(t, ManagedByValue, labels[LabelManagedBy])
	assert.Equal(t, "mainnet-node", labels[LabelName])
	assert.Equal(t, "mainnet", labels[LabelNetwork])
	assert.Equal(t, "1.14.9", labels[LabelVersion])
	assert.Equal(t, "dogecoin-data", labels[LabelDataVolume])
	assert.Equal(t, "2026-08-25T10:00:00Z", labels[LabelCreatedAt])
}

// TestBuildLabels_UTCNormalization verifies non-UTC creation times are
// stored as UTC.
func TestBuildLabels_UTCNormalization(t *testing.T) {
	env := testNodeEnv()
	env.CreatedAt = time.Date(2026, 8, 25, 12, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	labels := BuildLabels(env)
	assert.Equal(t, "2026-08-25T10:00:00Z", labels[LabelCreatedAt])
}

// TestParseLabels_RoundTrip verifies ParseLabels is the inverse of
// BuildLabels for everything labels carry. Status, ContainerID, and Image
// are runtime state and are expected to be absent.
func TestParseLabels_RoundTrip(t *testing.T) {
	original := testNodeEnv()

	env, err := ParseLabels(BuildLabels(original))
	require.NoError(t, err)

	assert.Equal(t, original.Name, env.Name)
	assert.Equal(t, original.Network, env.Network)
	assert.Equal(t, original.Version, env.Version)
	assert.Equal(t, original.DataVolume, env.DataVolume)
	assert.True(t, original.CreatedAt.Equal(env.CreatedAt))
	assert.Empty(t, env.ContainerID)
	assert.Empty(t, env.Image)
}

// TestParseLabels_MissingKeys verifies the error lists every missing
// label at once.
func TestParseLabels_MissingKeys(t *testing.T) {
	_, err := ParseLabels(map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelName:      "mainnet-node",
	})
	require.Error(t, err)

	assert.Contains(t, err.Error(), LabelNetwork)
	assert.Contains(t, err.Error(), LabelVersion)
	assert.Contains(t, err.Error(), LabelDataVolume)
	assert.Contains(t, err.Error(), LabelCreatedAt)
}

// TestParseLabels_WrongManagedBy verifies containers managed by another
// tool are rejected even if the remaining labels happen to parse.
func TestParseLabels_WrongManagedBy(t *testing.T) {
	labels := BuildLabels(testNodeEnv())
	labels[LabelManagedBy] = "someone-else"

	_, err := ParseLabels(labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "someone-else")
}

// TestParseLabels_InvalidValues verifies malformed network and timestamp
// values are rejected.
func TestParseLabels_InvalidValues(t *testing.T) {
	t.Run("bad network", func(t *testing.T) {
		labels := BuildLabels(testNodeEnv())
		labels[LabelNetwork] = "signet"

		_, err := ParseLabels(labels)
		assert.Error(t, err)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		labels := BuildLabels(testNodeEnv())
		labels[LabelCreatedAt] = "yesterday"

		_, err := ParseLabels(labels)
		assert.Error(t, err)
	})
}
