// types.go defines the core domain types shared by the entrypoint
// launcher and the maintenance CLI.
//
// Key design decision: the set of bundled executables is a fixed, hardcoded
// enum rather than a directory listing taken at startup. The distribution's
// executable set only changes with a release bump, which also changes the
// manifest — so the enum and the manifest are updated together, and the
// launcher verifies the enum against the install directory when it builds
// its lookup table.
package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Executable identifies one of the prebuilt binaries shipped in the
// Dogecoin Core release archive and installed into the image.
type Executable string

const (
	// ExecDaemon is the node daemon. It is the default target when the
	// container argument vector does not name another executable.
	ExecDaemon Executable = "dogecoind"

	// ExecCLI is the JSON-RPC command line client. It talks to a running
	// daemon over the RPC port and shares the -datadir convention (the
	// RPC cookie lives in the data directory).
	ExecCLI Executable = "dogecoin-cli"

	// ExecTx is the offline transaction manipulation tool. It neither
	// reads the data directory nor contacts the daemon.
	ExecTx Executable = "dogecoin-tx"
)

// String returns the executable's file name. This is also the token users
// pass as the first container argument to select it.
func (e Executable) String() string {
	return string(e)
}

// IsValid reports whether the value names one of the bundled executables.
func (e Executable) IsValid() bool {
	switch e {
	case ExecDaemon, ExecCLI, ExecTx:
		return true
	default:
		return false
	}
}

// UsesDataDir reports whether the executable accepts the -datadir argument.
// The launcher injects the default data directory only for these targets;
// dogecoin-tx is a pure offline tool and rejects unknown options.
func (e Executable) UsesDataDir() bool {
	return e == ExecDaemon || e == ExecCLI
}

// ParseExecutable converts a string to an Executable.
// Returns an error if the string does not name a bundled executable.
func ParseExecutable(s string) (Executable, error) {
	exe := Executable(s)
	if !exe.IsValid() {
		return "", fmt.Errorf("unknown executable %q (bundled: dogecoind, dogecoin-cli, dogecoin-tx)", s)
	}
	return exe, nil
}

// KnownExecutables returns the full bundled executable set in a stable order
// (daemon first). The launcher resolves this set against the install
// directory once at startup; the fetch command installs exactly this set.
func KnownExecutables() []Executable {
	return []Executable{ExecDaemon, ExecCLI, ExecTx}
}

// Network identifies which Dogecoin network the node joins. The network
// determines the well-known P2P and RPC port numbers and is recorded on
// node containers as a label.
type Network string

const (
	// NetworkMainnet is the production Dogecoin network.
	NetworkMainnet Network = "mainnet"

	// NetworkTestnet is the public test network.
	NetworkTestnet Network = "testnet"

	// NetworkRegtest is the local regression test network. Blocks are
	// generated on demand; nothing connects in from outside.
	NetworkRegtest Network = "regtest"
)

// String returns the string representation of the Network.
func (n Network) String() string {
	return string(n)
}

// IsValid reports whether the value is one of the defined networks.
func (n Network) IsValid() bool {
	switch n {
	case NetworkMainnet, NetworkTestnet, NetworkRegtest:
		return true
	default:
		return false
	}
}

// P2PPort returns the default peer-to-peer listen port for the network.
func (n Network) P2PPort() int {
	switch n {
	case NetworkTestnet:
		return 44556
	case NetworkRegtest:
		return 18444
	default:
		return 22556
	}
}

// RPCPort returns the default JSON-RPC listen port for the network.
func (n Network) RPCPort() int {
	switch n {
	case NetworkTestnet:
		return 44555
	case NetworkRegtest:
		return 18332
	default:
		return 22555
	}
}

// DaemonArgs returns the dogecoind argument that selects this network.
// Mainnet is the daemon default and needs no argument.
func (n Network) DaemonArgs() []string {
	switch n {
	case NetworkTestnet:
		return []string{"-testnet"}
	case NetworkRegtest:
		return []string{"-regtest"}
	default:
		return nil
	}
}

// ParseNetwork converts a string to a Network.
// Returns an error if the string does not match any defined network.
func ParseNetwork(s string) (Network, error) {
	n := Network(strings.ToLower(s))
	if !n.IsValid() {
		return "", fmt.Errorf("invalid network %q (valid: mainnet, testnet, regtest)", s)
	}
	return n, nil
}

// NodeStatus represents the lifecycle state of a managed node container.
type NodeStatus string

const (
	// StatusRunning indicates the node container is running.
	StatusRunning NodeStatus = "running"

	// StatusStopped indicates the node container exists but is not running.
	// The data volume is preserved.
	StatusStopped NodeStatus = "stopped"
)

// String returns the string representation of NodeStatus.
func (s NodeStatus) String() string {
	return string(s)
}

// NodeEnv represents a managed Dogecoin node container. All fields are
// reconstructed at runtime from Docker container labels — there is no
// state file on disk.
type NodeEnv struct {
	// Name is the unique container name for this node.
	// Must contain only alphanumeric characters and hyphens.
	Name string `json:"name"`

	// Network is the Dogecoin network the node joins.
	Network Network `json:"network"`

	// Image is the container image reference the node runs.
	Image string `json:"image"`

	// Version is the packaged Dogecoin Core release version.
	Version string `json:"version"`

	// DataVolume is the named Docker volume mounted at the data directory.
	DataVolume string `json:"dataVolume"`

	// Status is the current lifecycle state of the node container.
	Status NodeStatus `json:"status"`

	// ContainerID is the Docker container identifier, when known.
	ContainerID string `json:"containerId,omitempty"`

	// CreatedAt is the timestamp when the node container was created.
	CreatedAt time.Time `json:"createdAt"`
}

// nameRegex validates node names: alphanumeric + hyphens only,
// must start and end with alphanumeric.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

// ValidateName checks if the given name is a valid node container name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("node name must not be empty")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid node name %q: must contain only alphanumeric characters and hyphens, and start/end with alphanumeric", name)
	}
	return nil
}

// ExitCode defines the process exit codes used by both binaries.
// The entrypoint launcher uses the first four; the maintenance CLI uses
// the full set. Scripts and the container runtime's HEALTHCHECK rely on
// these being stable.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitExecutableNotFound indicates the requested bundled executable
	// does not exist in the install directory. Fatal, no recovery — the
	// image contents do not match what the launcher expects.
	ExitExecutableNotFound ExitCode = 2

	// ExitPrivilegeDrop indicates the switch to the unprivileged user
	// failed. Fatal — the node must never run as root.
	ExitPrivilegeDrop ExitCode = 3

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 4

	// ExitChecksumMismatch indicates the downloaded release archive did
	// not match the manifest's SHA-256 checksum.
	ExitChecksumMismatch ExitCode = 5

	// ExitNodeNotFound indicates no managed node container with the
	// requested name exists.
	ExitNodeNotFound ExitCode = 6

	// ExitNodeUnhealthy indicates the RPC health check judged the node
	// unhealthy (still syncing, or RPC unreachable).
	ExitNodeUnhealthy ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This lets the binaries translate domain errors into appropriate
// process exit codes at a single place.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
