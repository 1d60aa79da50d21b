package launcher

import (
	"strings"
)

// BuildEnv produces the environment for the exec'd executable: the current
// container environment with HOME pointed at the unprivileged user's home
// directory and the data directory variable pinned.
//
// HOME must be corrected because the shim may start as root (HOME=/root),
// and the bundled binaries fall back to $HOME/.dogecoin when no -datadir
// is given. DOGECOIN_DATA is set so hook scripts and the HEALTHCHECK see
// the same path the shim injected.
func BuildEnv(base []string, homeDir, dataDir string) []string {
	env := setEnvVar(base, "HOME", homeDir)
	env = setEnvVar(env, EnvDataDir, dataDir)
	return env
}

// setEnvVar returns a copy of env with key set to value, replacing an
// existing entry or appending a new one. The input slice is not modified.
func setEnvVar(env []string, key, value string) []string {
	out := make([]string, 0, len(env)+1)
	prefix := key + "="

	replaced := false
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			if !replaced {
				out = append(out, prefix+value)
				replaced = true
			}
			// Drop duplicate entries for the same key.
			continue
		}
		out = append(out, kv)
	}
	if !replaced {
		out = append(out, prefix+value)
	}
	return out
}
