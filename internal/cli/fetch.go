// Package cli — fetch.go implements the "dogecoin-container fetch" command.
//
// The fetch command downloads a Dogecoin Core release archive named by the
// distribution manifest, verifies its SHA-256 checksum against the pinned
// value, and unpacks the node executables into an install directory. It is
// the command the image build runs to populate /opt/dogecoin/bin, and can
// also be used standalone to stage binaries on a host.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dogecoin-container/internal/dist"
	"github.com/mmr-tortoise/dogecoin-container/internal/launcher"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// fetchFlags holds the flag values for the fetch command.
// These are bound to cobra flags in NewFetchCommand.
type fetchFlags struct {
	manifest string // --manifest: path to the distribution manifest
	platform string // --platform: release platform key
	dest     string // --dest: install directory for the executables
	keep     bool   // --keep-archive: don't delete the downloaded archive
}

// NewFetchCommand creates the "fetch" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewFetchCommand() *cobra.Command {
	flags := &fetchFlags{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download, verify, and install a Dogecoin Core release",
		Long: `Download the release archive named by the distribution manifest, verify
its SHA-256 checksum against the pinned value, and install the node
executables (dogecoind, dogecoin-cli, dogecoin-tx) into the destination
directory.

A checksum mismatch aborts the install and leaves nothing behind.

Examples:
  dogecoin-container fetch
  dogecoin-container fetch --platform aarch64-linux-gnu --dest /opt/dogecoin/bin
  dogecoin-container fetch --manifest ./manifest.jsonc --keep-archive`,

		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.manifest, "manifest", "manifest.jsonc",
		"Path to the distribution manifest")
	cmd.Flags().StringVar(&flags.platform, "platform", defaultPlatform(),
		"Release platform key (e.g. x86_64-linux-gnu)")
	cmd.Flags().StringVar(&flags.dest, "dest", launcher.DefaultInstallDir,
		"Directory to install the executables into")
	cmd.Flags().BoolVar(&flags.keep, "keep-archive", false,
		"Keep the downloaded archive after installing")

	return cmd
}

// defaultPlatform maps the build architecture to the release platform key
// used in the manifest. Dogecoin Core publishes Linux archives per target
// triple, so only Linux architectures map cleanly.
func defaultPlatform() string {
	switch runtime.GOARCH {
	case "arm64":
		return "aarch64-linux-gnu"
	case "arm":
		return "arm-linux-gnueabihf"
	default:
		return "x86_64-linux-gnu"
	}
}

// runFetch is the main logic function for the fetch command.
// It loads the manifest, downloads the archive, verifies the checksum,
// and installs the executables.
func runFetch(ctx context.Context, flags *fetchFlags) error {
	// Step 1: Load and validate the manifest.
	m, err := dist.LoadManifest(flags.manifest)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load manifest", err)
	}
	VerboseLog("Manifest: version %s, %d platform(s)", m.Version, len(m.Platforms))

	artifact, err := m.Artifact(flags.platform)
	if err != nil {
		return err
	}
	VerboseLog("Platform %s: %s", flags.platform, artifact.Archive)

	// Step 2: Download the archive into a scratch directory that is
	// removed on exit unless --keep-archive moves the file out first.
	tmpDir, err := os.MkdirTemp("", "dogecoin-fetch-")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to create download directory", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	url, err := m.ArchiveURL(flags.platform)
	if err != nil {
		return err
	}
	VerboseLog("Downloading %s", url)

	archivePath, err := dist.Fetch(ctx, m, flags.platform, tmpDir)
	if err != nil {
		return err
	}
	VerboseLog("Downloaded to %s", archivePath)

	// Step 3: Verify the checksum before anything touches the archive.
	if err := dist.VerifyChecksum(archivePath, artifact.SHA256); err != nil {
		return err // CLIError with ExitChecksumMismatch
	}
	VerboseLog("Checksum verified: %s", artifact.SHA256)

	// Step 4: Install the executables.
	if err := dist.Install(archivePath, m, flags.dest); err != nil {
		return err
	}

	// Step 5: Optionally keep the archive for caching or inspection.
	keptPath := ""
	if flags.keep {
		keptPath = filepath.Join(flags.dest, filepath.Base(archivePath))
		if err := os.Rename(archivePath, keptPath); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to keep archive", err)
		}
	}

	printFetchResult(m, flags.platform, flags.dest, keptPath)
	return nil
}

// printFetchResult outputs the fetch result in text or JSON format.
func printFetchResult(m *dist.Manifest, platform, dest, keptArchive string) {
	if IsJSONOutput() {
		type resultJSON struct {
			Version     string   `json:"version"`
			Platform    string   `json:"platform"`
			InstallDir  string   `json:"installDir"`
			Executables []string `json:"executables"`
			Archive     string   `json:"archive,omitempty"`
		}

		result := resultJSON{
			Version:    m.Version,
			Platform:   platform,
			InstallDir: dest,
			Archive:    keptArchive,
		}
		for _, exe := range m.Executables {
			result.Executables = append(result.Executables, exe)
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Installed Dogecoin Core %s (%s) to %s\n", m.Version, platform, dest)
	for _, exe := range m.Executables {
		fmt.Printf("  %s\n", filepath.Join(dest, exe))
	}
	if keptArchive != "" {
		fmt.Printf("  archive kept at %s\n", keptArchive)
	}
}
