package dist

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// TestVerifyChecksum_Match verifies a file matching its digest passes.
func TestVerifyChecksum_Match(t *testing.T) {
	content := []byte("not a real release archive, but any bytes will do")
	path := filepath.Join(t.TempDir(), "archive.tar.gz")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	sum := sha256.Sum256(content)
	assert.NoError(t, VerifyChecksum(path, hex.EncodeToString(sum[:])))
}

// TestVerifyChecksum_Mismatch verifies a wrong digest fails with
// ExitChecksumMismatch and reports both digests.
func TestVerifyChecksum_Mismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("corrupted download"), 0o644))

	want := repeatHex(64)
	err := VerifyChecksum(path, want)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitChecksumMismatch, cliErr.Code)
	assert.Contains(t, err.Error(), want)
}

// TestVerifyChecksum_MissingFile verifies the open error path.
func TestVerifyChecksum_MissingFile(t *testing.T) {
	err := VerifyChecksum(filepath.Join(t.TempDir(), "nope.tar.gz"), repeatHex(64))
	assert.Error(t, err)
}
