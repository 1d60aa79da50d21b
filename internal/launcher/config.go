package launcher

import (
	"fmt"
	"os"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// Environment variable names and their image-build-time defaults.
// These are fixed when the image is built and are not a runtime
// configuration surface — the env vars exist so the Dockerfile can set
// them in one place and the shim, the HEALTHCHECK, and the bundled
// binaries all agree on the same paths.
const (
	// EnvInstallDir overrides the directory holding the bundled executables.
	EnvInstallDir = "DOGECOIN_INSTALL_DIR"

	// EnvDataDir overrides the node data directory passed via -datadir.
	EnvDataDir = "DOGECOIN_DATA"

	// EnvUser overrides the unprivileged account the node runs as.
	EnvUser = "DOGECOIN_USER"

	// EnvNetwork selects the node network (mainnet, testnet, regtest)
	// for containers that don't pass a network flag in their argument
	// vector. Unset means mainnet.
	EnvNetwork = "DOGECOIN_NETWORK"

	// DefaultInstallDir is where the fetch command installs the
	// distribution inside the image.
	DefaultInstallDir = "/opt/dogecoin/bin"

	// DefaultDataDir is the canonical data directory under the
	// unprivileged user's home. The image declares it as a VOLUME.
	DefaultDataDir = "/home/dogecoin/.dogecoin"

	// DefaultUser is the unprivileged account created at image build time.
	DefaultUser = "dogecoin"
)

// Config holds the launcher's fixed settings. All values come from the
// image environment with hardcoded fallbacks; there is no flag parsing —
// the entire argument vector belongs to the bundled executables.
type Config struct {
	// InstallDir is the directory containing the bundled executables.
	InstallDir string

	// DataDir is the node data directory injected as -datadir for
	// executables that accept it.
	DataDir string

	// User is the unprivileged account to switch to before exec when
	// the shim starts as root.
	User string

	// Network is the node network injected as a default argument for
	// executables that accept a network selection.
	Network model.Network
}

// FromEnv builds a Config from the container environment, applying the
// image defaults for anything unset. A DOGECOIN_NETWORK value that names
// no known network is an error: silently falling back to mainnet on a
// typo would sync the wrong chain into the data volume.
func FromEnv() (Config, error) {
	cfg := Config{
		InstallDir: envOr(EnvInstallDir, DefaultInstallDir),
		DataDir:    envOr(EnvDataDir, DefaultDataDir),
		User:       envOr(EnvUser, DefaultUser),
		Network:    model.NetworkMainnet,
	}

	if raw := os.Getenv(EnvNetwork); raw != "" {
		network, err := model.ParseNetwork(raw)
		if err != nil {
			return Config{}, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("invalid %s value %q", EnvNetwork, raw), err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// envOr returns the environment variable's value, or fallback if the
// variable is unset or empty. An empty value is treated as unset because
// "DOGECOIN_DATA=" in a compose file almost always means "use the default",
// not "use the current directory".
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ApplyDefaults prepends the launcher's default arguments for the target
// executable to the user-supplied arguments.
//
// Injected defaults:
//   - -datadir=<DataDir> for the daemon and the CLI client, unless the
//     caller already passed a -datadir.
//   - -printtoconsole for the daemon, unless already present, so the node
//     logs to the container's stdout instead of only debug.log.
//   - the configured network's selection flag (-testnet / -regtest) for
//     the daemon and the CLI client, unless the caller already picked a
//     network itself. Mainnet needs no flag.
//
// Defaults come first so that anything the caller passes can override them
// (later options win for the bundled binaries).
func (c Config) ApplyDefaults(target model.Executable, args []string) []string {
	var defaults []string

	if target.UsesDataDir() && !hasOption(args, "-datadir") {
		defaults = append(defaults, "-datadir="+c.DataDir)
	}
	if target == model.ExecDaemon && !hasOption(args, "-printtoconsole") {
		defaults = append(defaults, "-printtoconsole")
	}
	if target.UsesDataDir() && !hasOption(args, "-testnet") && !hasOption(args, "-regtest") {
		defaults = append(defaults, c.Network.DaemonArgs()...)
	}

	if len(defaults) == 0 {
		return args
	}
	return append(defaults, args...)
}

// hasOption reports whether args already contains the named option, in
// either bare ("-datadir") or assignment ("-datadir=/path") form. The
// bundled binaries also accept a double-dash spelling, so both prefixes
// are checked.
func hasOption(args []string, name string) bool {
	for _, a := range args {
		for _, prefix := range []string{name, "-" + name} {
			if a == prefix || len(a) > len(prefix) && a[:len(prefix)+1] == prefix+"=" {
				return true
			}
		}
	}
	return false
}
