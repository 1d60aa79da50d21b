package dist

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// buildArchive writes a gzip-compressed tarball containing the given
// entries (path → content) and returns its location. Entries mimic the
// upstream release layout: dogecoin-<version>/bin/<name>.
func buildArchive(t *testing.T, entries map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for name, content := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o755,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "dogecoin-1.14.9-x86_64-linux-gnu.tar.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// testManifest returns a minimal valid manifest for install tests.
func testManifest() *Manifest {
	return &Manifest{
		Version:     "1.14.9",
		BaseURL:     "https://example.com",
		Executables: []string{"dogecoind", "dogecoin-cli", "dogecoin-tx"},
		Platforms: map[string]Artifact{
			"x86_64-linux-gnu": {Archive: "dogecoin-1.14.9-x86_64-linux-gnu.tar.gz", SHA256: repeatHex(64)},
		},
	}
}

// TestInstall_CompleteArchive verifies all manifest executables land in
// the install directory as executable files, and that unrelated archive
// contents are skipped.
func TestInstall_CompleteArchive(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"dogecoin-1.14.9/bin/dogecoind":    "daemon-bytes",
		"dogecoin-1.14.9/bin/dogecoin-cli": "cli-bytes",
		"dogecoin-1.14.9/bin/dogecoin-tx":  "tx-bytes",
		"dogecoin-1.14.9/bin/dogecoin-qt":  "qt-bytes",
		"dogecoin-1.14.9/README.md":        "docs",
	})
	installDir := filepath.Join(t.TempDir(), "bin")

	require.NoError(t, Install(archive, testManifest(), installDir))

	for _, name := range []string{"dogecoind", "dogecoin-cli", "dogecoin-tx"} {
		info, err := os.Stat(filepath.Join(installDir, name))
		require.NoError(t, err, "executable %s should be installed", name)
		assert.NotZero(t, info.Mode().Perm()&0o111, "%s should be executable", name)
	}

	// dogecoin-qt is in the archive but not in the manifest.
	_, err := os.Stat(filepath.Join(installDir, "dogecoin-qt"))
	assert.True(t, os.IsNotExist(err), "unlisted binaries must not be installed")

	// The installed daemon carries the archive's bytes.
	data, err := os.ReadFile(filepath.Join(installDir, "dogecoind"))
	require.NoError(t, err)
	assert.Equal(t, "daemon-bytes", string(data))
}

// TestInstall_MissingExecutable verifies an archive missing a promised
// executable fails with ExitExecutableNotFound at install time, not later
// at container start.
func TestInstall_MissingExecutable(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"dogecoin-1.14.9/bin/dogecoind":    "daemon-bytes",
		"dogecoin-1.14.9/bin/dogecoin-cli": "cli-bytes",
		// dogecoin-tx absent
	})

	err := Install(archive, testManifest(), filepath.Join(t.TempDir(), "bin"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitExecutableNotFound, cliErr.Code)
	assert.Contains(t, err.Error(), "dogecoin-tx")
}

// TestInstall_TraversalEntry verifies an entry trying to escape the
// install directory cannot place a file outside it. The hostile entry's
// base name matches a wanted executable, so without Clean+Base it would
// be written through the ../ path.
func TestInstall_TraversalEntry(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"../../escape/dogecoind":           "hostile",
		"dogecoin-1.14.9/bin/dogecoin-cli": "cli-bytes",
		"dogecoin-1.14.9/bin/dogecoin-tx":  "tx-bytes",
	})
	root := t.TempDir()
	installDir := filepath.Join(root, "nested", "bin")

	require.NoError(t, Install(archive, testManifest(), installDir))

	// The daemon must be inside the install directory, not at the
	// traversal target.
	_, err := os.Stat(filepath.Join(installDir, "dogecoind"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape", "dogecoind"))
	assert.True(t, os.IsNotExist(err))
}

// TestInstall_FirstEntryWins verifies a duplicate entry name does not
// overwrite an already-extracted executable.
func TestInstall_FirstEntryWins(t *testing.T) {
	// Map iteration order is unspecified, so build the duplicate archive
	// by hand with a fixed entry order.
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range []struct{ name, content string }{
		{"dogecoin-1.14.9/bin/dogecoind", "first"},
		{"other/bin/dogecoind", "second"},
		{"dogecoin-1.14.9/bin/dogecoin-cli", "cli"},
		{"dogecoin-1.14.9/bin/dogecoin-tx", "tx"},
	} {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: e.name, Typeflag: tar.TypeReg, Mode: 0o755, Size: int64(len(e.content)),
		}))
		_, err := tw.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	archive := filepath.Join(t.TempDir(), "dup.tar.gz")
	require.NoError(t, os.WriteFile(archive, buf.Bytes(), 0o644))
	installDir := filepath.Join(t.TempDir(), "bin")

	require.NoError(t, Install(archive, testManifest(), installDir))

	data, err := os.ReadFile(filepath.Join(installDir, "dogecoind"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

// TestInstall_NotGzip verifies a non-gzip file is rejected up front.
func TestInstall_NotGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	err := Install(path, testManifest(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
}
