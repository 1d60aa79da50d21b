package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecutable_String verifies that Executable values produce the bundled
// binary file names, which double as the dispatch tokens.
func TestExecutable_String(t *testing.T) {
	tests := []struct {
		exe      Executable
		expected string
	}{
		{ExecDaemon, "dogecoind"},
		{ExecCLI, "dogecoin-cli"},
		{ExecTx, "dogecoin-tx"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.exe.String())
		})
	}
}

// TestExecutable_IsValid checks that only bundled executables pass validation.
func TestExecutable_IsValid(t *testing.T) {
	assert.True(t, ExecDaemon.IsValid())
	assert.True(t, ExecCLI.IsValid())
	assert.True(t, ExecTx.IsValid())
	assert.False(t, Executable("dogecoin-qt").IsValid())
	assert.False(t, Executable("").IsValid())
}

// TestExecutable_UsesDataDir verifies that only the daemon and the CLI
// client get the default -datadir injection.
func TestExecutable_UsesDataDir(t *testing.T) {
	assert.True(t, ExecDaemon.UsesDataDir())
	assert.True(t, ExecCLI.UsesDataDir())
	assert.False(t, ExecTx.UsesDataDir(), "dogecoin-tx is offline and takes no -datadir")
}

// TestParseExecutable verifies string-to-executable conversion and error cases.
// Unlike network parsing there is no case normalization: the token must match
// the binary file name exactly, since it is compared against argv verbatim.
func TestParseExecutable(t *testing.T) {
	tests := []struct {
		input    string
		expected Executable
		hasError bool
	}{
		{"dogecoind", ExecDaemon, false},
		{"dogecoin-cli", ExecCLI, false},
		{"dogecoin-tx", ExecTx, false},
		{"Dogecoind", "", true}, // case sensitive
		{"getinfo", "", true},   // an RPC method, not an executable
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseExecutable(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestKnownExecutables verifies the lookup set is complete and daemon-first.
func TestKnownExecutables(t *testing.T) {
	known := KnownExecutables()
	require.Len(t, known, 3)
	assert.Equal(t, ExecDaemon, known[0], "daemon must come first — it is the dispatch default")
	assert.Contains(t, known, ExecCLI)
	assert.Contains(t, known, ExecTx)
}

// TestNetwork_Ports verifies the well-known port pairs per network.
func TestNetwork_Ports(t *testing.T) {
	tests := []struct {
		network Network
		p2p     int
		rpc     int
	}{
		{NetworkMainnet, 22556, 22555},
		{NetworkTestnet, 44556, 44555},
		{NetworkRegtest, 18444, 18332},
	}

	for _, tt := range tests {
		t.Run(tt.network.String(), func(t *testing.T) {
			assert.Equal(t, tt.p2p, tt.network.P2PPort())
			assert.Equal(t, tt.rpc, tt.network.RPCPort())
		})
	}
}

// TestNetwork_DaemonArgs verifies the network selection arguments.
// Mainnet is the daemon default and must produce no argument.
func TestNetwork_DaemonArgs(t *testing.T) {
	assert.Empty(t, NetworkMainnet.DaemonArgs())
	assert.Equal(t, []string{"-testnet"}, NetworkTestnet.DaemonArgs())
	assert.Equal(t, []string{"-regtest"}, NetworkRegtest.DaemonArgs())
}

// TestParseNetwork verifies string-to-network conversion,
// including case normalization and error cases.
func TestParseNetwork(t *testing.T) {
	tests := []struct {
		input    string
		expected Network
		hasError bool
	}{
		{"mainnet", NetworkMainnet, false},
		{"testnet", NetworkTestnet, false},
		{"regtest", NetworkRegtest, false},
		{"Mainnet", NetworkMainnet, false}, // case insensitive
		{"REGTEST", NetworkRegtest, false}, // case insensitive
		{"signet", "", true},               // not a Dogecoin network
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseNetwork(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestValidateName verifies node container name validation rules.
func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "mainnet-node", false},
		{"single character", "a", false},
		{"alphanumeric", "node01", false},
		{"empty", "", true},
		{"leading hyphen", "-node", true},
		{"trailing hyphen", "node-", true},
		{"underscore", "main_node", true},
		{"slash", "nodes/main", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestCLIError_Error verifies message formatting with and without
// an underlying error.
func TestCLIError_Error(t *testing.T) {
	plain := NewCLIError(ExitExecutableNotFound, "executable not found")
	assert.Equal(t, "executable not found", plain.Error())

	underlying := errors.New("stat /opt/dogecoin/bin/dogecoind: no such file or directory")
	wrapped := WrapCLIError(ExitExecutableNotFound, "executable not found", underlying)
	assert.Equal(t, "executable not found: stat /opt/dogecoin/bin/dogecoind: no such file or directory", wrapped.Error())
}

// TestCLIError_Unwrap verifies errors.Is works through CLIError wrapping.
func TestCLIError_Unwrap(t *testing.T) {
	underlying := errors.New("operation not permitted")
	wrapped := WrapCLIError(ExitPrivilegeDrop, "failed to drop privileges", underlying)

	assert.True(t, errors.Is(wrapped, underlying))
	assert.Equal(t, underlying, wrapped.Unwrap())

	plain := NewCLIError(ExitGeneralError, "something went wrong")
	assert.Nil(t, plain.Unwrap())
}

// TestExitCodes_Stable pins the numeric exit code values. The Dockerfile's
// HEALTHCHECK and downstream scripts depend on these numbers.
func TestExitCodes_Stable(t *testing.T) {
	assert.Equal(t, 0, int(ExitSuccess))
	assert.Equal(t, 1, int(ExitGeneralError))
	assert.Equal(t, 2, int(ExitExecutableNotFound))
	assert.Equal(t, 3, int(ExitPrivilegeDrop))
	assert.Equal(t, 4, int(ExitDockerNotRunning))
	assert.Equal(t, 5, int(ExitChecksumMismatch))
	assert.Equal(t, 6, int(ExitNodeNotFound))
	assert.Equal(t, 7, int(ExitNodeUnhealthy))
}
