package launcher

import (
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// Invocation is the result of dispatching a container argument vector:
// which bundled executable to run and the arguments it receives (before
// default-argument injection). Dispatch is a tagged choice rather than
// string matching scattered through the exec path, so the rule can be
// tested in isolation from process execution.
type Invocation struct {
	// Target is the bundled executable to exec.
	Target model.Executable

	// Args are the arguments for the target, excluding argv[0].
	Args []string
}

// aliases are short selector names accepted in the first argv position
// only, as a convenience for interactive use: `docker run <image> cli
// getinfo` instead of spelling out dogecoin-cli. They are launcher-level
// sugar — the manifest and the lookup table deal exclusively in the full
// executable names.
var aliases = map[string]model.Executable{
	"daemon": model.ExecDaemon,
	"cli":    model.ExecCLI,
	"tx":     model.ExecTx,
}

// Dispatch decides which bundled executable a container argument vector
// selects.
//
// Rule: if the first token names a bundled executable (full name or
// alias), that executable is the target and the remaining tokens are its
// arguments. Any other vector selects the daemon with the full,
// unmodified vector — this covers the empty vector (plain `docker run
// <image>`), daemon flags like -testnet, and RPC method names mistakenly
// passed without the dogecoin-cli token (the daemon rejects those itself
// with its own diagnostics).
func Dispatch(args []string) Invocation {
	if len(args) > 0 {
		if target, err := model.ParseExecutable(args[0]); err == nil {
			return Invocation{Target: target, Args: args[1:]}
		}
		if target, ok := aliases[args[0]]; ok {
			return Invocation{Target: target, Args: args[1:]}
		}
	}
	return Invocation{Target: model.ExecDaemon, Args: args}
}
