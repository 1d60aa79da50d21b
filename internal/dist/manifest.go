package dist

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// Manifest describes the upstream release packaged into the image: which
// version, where the archives live, which executables get installed, and
// the expected checksum per platform. It is the single place a release
// bump touches.
type Manifest struct {
	// Version is the upstream release version (e.g., "1.14.9").
	Version string `json:"version"`

	// BaseURL is the release download location. Archive file names are
	// appended to it.
	BaseURL string `json:"baseURL"`

	// Executables lists the archive binaries to install. Must match the
	// launcher's hardcoded executable set — the manifest and the enum
	// are updated together on a release bump.
	Executables []string `json:"executables"`

	// Platforms maps an upstream platform triplet (e.g.,
	// "x86_64-linux-gnu") to its archive artifact.
	Platforms map[string]Artifact `json:"platforms"`
}

// Artifact identifies one platform's release archive.
type Artifact struct {
	// Archive is the archive file name within BaseURL.
	Archive string `json:"archive"`

	// SHA256 is the expected hex-encoded checksum of the archive, taken
	// from the upstream release's signed SHA256SUMS.asc.
	SHA256 string `json:"sha256"`
}

// LoadManifest reads and parses a manifest.jsonc file.
//
// The manifest uses JSONC (JSON with comments) so the checksum table can
// carry provenance notes. github.com/tidwall/jsonc strips comments and
// trailing commas; the standard encoding/json does the rest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the manifest for internal consistency. It enforces that
// every listed executable is one the launcher knows, and that every
// platform entry carries a well-formed archive name and checksum.
func (m *Manifest) Validate() error {
	if m.Version == "" {
		return fmt.Errorf("version must not be empty")
	}
	if !strings.HasPrefix(m.BaseURL, "https://") && !strings.HasPrefix(m.BaseURL, "http://") {
		return fmt.Errorf("baseURL %q must be an http(s) URL", m.BaseURL)
	}

	if len(m.Executables) == 0 {
		return fmt.Errorf("executables must not be empty")
	}
	for _, name := range m.Executables {
		if _, err := model.ParseExecutable(name); err != nil {
			return fmt.Errorf("executables: %w", err)
		}
	}

	if len(m.Platforms) == 0 {
		return fmt.Errorf("platforms must not be empty")
	}
	for platform, art := range m.Platforms {
		if art.Archive == "" {
			return fmt.Errorf("platform %s: archive must not be empty", platform)
		}
		if !isHexDigest(art.SHA256) {
			return fmt.Errorf("platform %s: sha256 must be 64 hex characters, got %q", platform, art.SHA256)
		}
	}

	return nil
}

// Artifact returns the archive artifact for the given platform triplet.
func (m *Manifest) Artifact(platform string) (Artifact, error) {
	art, ok := m.Platforms[platform]
	if !ok {
		platforms := make([]string, 0, len(m.Platforms))
		for p := range m.Platforms {
			platforms = append(platforms, p)
		}
		return Artifact{}, fmt.Errorf("manifest has no platform %q (available: %s)",
			platform, strings.Join(platforms, ", "))
	}
	return art, nil
}

// ArchiveURL returns the full download URL for the given platform's archive.
func (m *Manifest) ArchiveURL(platform string) (string, error) {
	art, err := m.Artifact(platform)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(m.BaseURL, "/") + "/" + art.Archive, nil
}

// isHexDigest reports whether s is a 64-character lowercase hex string,
// i.e. a SHA-256 digest as printed by sha256sum.
func isHexDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
