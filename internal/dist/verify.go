package dist

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// VerifyChecksum computes the SHA-256 digest of the file at path and
// compares it to the expected hex digest from the manifest.
//
// A mismatch is fatal with ExitChecksumMismatch and no retry: either the
// download was corrupted or the mirror served a different artifact, and
// both must fail the image build loudly.
func VerifyChecksum(path, wantHex string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for checksum: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	// Stream the file through the hash rather than reading it into
	// memory — release archives are tens of megabytes.
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to hash %s: %w", path, err)
	}

	gotHex := hex.EncodeToString(h.Sum(nil))
	if gotHex != wantHex {
		return model.NewCLIError(
			model.ExitChecksumMismatch,
			fmt.Sprintf("checksum mismatch for %s: got %s, manifest says %s", path, gotHex, wantHex),
		)
	}

	return nil
}
