package dist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// defaultFetchTimeout bounds a single archive download. Release archives
// are tens of megabytes; an hour is far beyond any sane mirror but keeps
// a stalled CI build from hanging forever.
const defaultFetchTimeout = 1 * time.Hour

// Fetch downloads the release archive for the given platform into destDir
// and returns the path of the downloaded file.
//
// The download goes to a .partial file first and is renamed into place only
// after the body has been fully written, so an interrupted build never
// leaves a truncated archive where a later step would checksum it.
//
// Fetch does not verify the checksum — that is VerifyChecksum's job, kept
// separate so the verify step can also run against a pre-downloaded file.
func Fetch(ctx context.Context, m *Manifest, platform, destDir string) (string, error) {
	url, err := m.ArchiveURL(platform)
	if err != nil {
		return "", err
	}
	art, err := m.Artifact(platform)
	if err != nil {
		return "", err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, defaultFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download of %s failed: %s", url, resp.Status)
	}

	destPath := filepath.Join(destDir, art.Archive)
	partialPath := destPath + ".partial"

	f, err := os.Create(partialPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", partialPath, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(partialPath)
		return "", fmt.Errorf("failed to write %s: %w", partialPath, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(partialPath)
		return "", fmt.Errorf("failed to close %s: %w", partialPath, err)
	}

	if err := os.Rename(partialPath, destPath); err != nil {
		return "", fmt.Errorf("failed to move archive into place: %w", err)
	}

	return destPath, nil
}
