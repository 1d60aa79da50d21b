// Package model defines the domain types and value objects for the
// dogecoin-container toolkit.
//
// This package contains pure data structures with no external dependencies.
// The bundled executable set (Executable), network identities (Network),
// and node container metadata (NodeEnv) live here, along with the exit
// code taxonomy (ExitCode) and a custom error type (CLIError) that carries
// exit codes for proper OS process exit handling.
//
// NodeEnv values are transient representations reconstructed from Docker
// container labels at runtime — there are no persistent state files.
package model
