// Package main is the container ENTRYPOINT for the Dogecoin Core image.
//
// This binary is a process-start shim, not a CLI: it takes the container's
// argument vector verbatim (no flag parsing of its own), decides which
// bundled executable the vector selects, drops privileges, and execs the
// target. See internal/launcher for the dispatch and privilege rules.
//
// On success this process no longer exists — exec(2) replaces it with the
// bundled executable, so exit codes and signal handling belong entirely to
// the node. On failure it prints one line to stderr and exits with the
// error's CLIError code (executable missing, privilege drop failure).
package main

import (
	"fmt"
	"os"

	"github.com/mmr-tortoise/dogecoin-container/internal/launcher"
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

func main() {
	cfg, err := launcher.FromEnv()
	if err != nil {
		fail(err)
	}

	// os.Args[0] is the shim's own path; everything after it is the
	// container argument vector that dispatch operates on.
	err = launcher.Run(cfg, os.Args[1:])

	// Run only returns on failure. No retries, no cleanup — a failure
	// here means the image layout or user setup is broken, and the only
	// correct behavior is a loud non-zero exit.
	fail(err)
}

// fail prints the error and exits with its CLIError code, or the general
// code when the error carries none.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "dogecoin-entrypoint: %v\n", err)
	if cliErr, ok := err.(*model.CLIError); ok {
		os.Exit(int(cliErr.Code))
	}
	os.Exit(int(model.ExitGeneralError))
}
