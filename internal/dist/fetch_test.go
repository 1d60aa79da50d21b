package dist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetchManifest returns a manifest pointing at the given test server.
func fetchManifest(baseURL string) *Manifest {
	return &Manifest{
		Version:     "1.14.9",
		BaseURL:     baseURL,
		Executables: []string{"dogecoind"},
		Platforms: map[string]Artifact{
			"x86_64-linux-gnu": {Archive: "dogecoin-1.14.9-x86_64-linux-gnu.tar.gz", SHA256: repeatHex(64)},
		},
	}
}

// TestFetch_Success verifies the archive downloads to its manifest file
// name with no .partial file left behind.
func TestFetch_Success(t *testing.T) {
	payload := []byte("archive-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dogecoin-1.14.9-x86_64-linux-gnu.tar.gz", r.URL.Path)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	destDir := t.TempDir()
	path, err := Fetch(context.Background(), fetchManifest(srv.URL), "x86_64-linux-gnu", destDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destDir, "dogecoin-1.14.9-x86_64-linux-gnu.tar.gz"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	_, err = os.Stat(path + ".partial")
	assert.True(t, os.IsNotExist(err), "partial file must be renamed away on success")
}

// TestFetch_HTTPError verifies a non-200 response is fatal with no file
// written.
func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	destDir := t.TempDir()
	_, err := Fetch(context.Background(), fetchManifest(srv.URL), "x86_64-linux-gnu", destDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	entries, readErr := os.ReadDir(destDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "failed download must not leave files behind")
}

// TestFetch_UnknownPlatform verifies the manifest lookup error surfaces
// before any network activity.
func TestFetch_UnknownPlatform(t *testing.T) {
	_, err := Fetch(context.Background(), fetchManifest("https://localhost:1"), "riscv64-linux-gnu", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "riscv64-linux-gnu")
}
