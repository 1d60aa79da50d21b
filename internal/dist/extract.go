package dist

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// Install extracts the manifest's executables from the release archive
// (a gzip-compressed tarball) into installDir with mode 0755.
//
// The upstream archive lays binaries out as <release-dir>/bin/<name>;
// matching is done on the final path element so a layout change in the
// release directory name does not break installation. Everything else in
// the archive (docs, share/, dogecoin-qt) is skipped.
//
// Returns a CLIError with ExitExecutableNotFound if the archive does not
// contain every executable the manifest promises — an incomplete install
// directory would otherwise only surface when the entrypoint launcher
// resolves its lookup table at container start.
func Install(archivePath string, m *Manifest, installDir string) error {
	wanted := make(map[string]bool, len(m.Executables))
	for _, name := range m.Executables {
		wanted[name] = false
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("archive %s is not a valid gzip stream: %w", archivePath, err)
	}
	defer func() { _ = gz.Close() }()

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return fmt.Errorf("failed to create install directory %s: %w", installDir, err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive %s: %w", archivePath, err)
		}

		// Only regular files can be executables; skip directories,
		// symlinks, and anything else.
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.Base(filepath.Clean(hdr.Name))
		extracted, ok := wanted[name]
		if !ok || extracted {
			continue
		}

		// filepath.Base never returns a path separator, so joining it
		// under installDir cannot escape the directory. The Clean above
		// normalizes any ../ games in the entry name first.
		destPath := filepath.Join(installDir, name)
		if err := writeExecutable(destPath, tr); err != nil {
			return err
		}
		wanted[name] = true
	}

	var missing []string
	for name, extracted := range wanted {
		if !extracted {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return model.NewCLIError(
			model.ExitExecutableNotFound,
			fmt.Sprintf("archive %s is missing expected executables: %s",
				archivePath, strings.Join(missing, ", ")),
		)
	}

	return nil
}

// writeExecutable writes one archive entry to destPath with mode 0755.
func writeExecutable(destPath string, r io.Reader) error {
	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(destPath)
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}

	return nil
}
