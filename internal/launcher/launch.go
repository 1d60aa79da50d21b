//go:build linux

package launcher

import (
	"fmt"
	"os"
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// Run is the entrypoint shim's whole job: dispatch the container argument
// vector, resolve the target against the install directory, drop to the
// unprivileged user, and replace this process with the target executable.
//
// On success Run does not return — unix.Exec replaces the process image.
// Every returned error is fatal and carries a CLIError exit code; there is
// no retry and no fallback, because nothing above the shim exists to
// recover.
func Run(cfg Config, args []string) error {
	// Resolve the full lookup table up front. A broken install directory
	// fails here with one complete diagnostic, before any privilege or
	// process state has changed.
	table, err := ResolveTable(cfg.InstallDir)
	if err != nil {
		return err
	}

	inv := Dispatch(args)

	path, err := table.Path(inv.Target)
	if err != nil {
		return err
	}

	// Look up the unprivileged account before dropping anything, while we
	// can still read /etc/passwd as root.
	usr, err := user.Lookup(cfg.User)
	if err != nil {
		return model.WrapCLIError(
			model.ExitPrivilegeDrop,
			fmt.Sprintf("unprivileged user %q does not exist in the image", cfg.User),
			err,
		)
	}

	if err := dropPrivileges(usr); err != nil {
		return err
	}

	// argv[0] must be the executable name itself — the bundled binaries
	// use it in their help and error output.
	argv := append([]string{inv.Target.String()}, cfg.ApplyDefaults(inv.Target, inv.Args)...)
	env := BuildEnv(os.Environ(), usr.HomeDir, cfg.DataDir)

	if err := unix.Exec(path, argv, env); err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("exec %s failed", path),
			err,
		)
	}

	// Unreachable: Exec either replaces the process or returns an error.
	return nil
}

// dropPrivileges switches the process to the unprivileged user. The order
// matters: supplementary groups, then gid, then uid — once the uid is
// dropped, the process can no longer change its groups.
//
// A process already running as non-root skips the drop; the container was
// started with --user or the image default, which is exactly the
// unprivileged context we want.
func dropPrivileges(usr *user.User) error {
	if unix.Geteuid() != 0 {
		return nil
	}

	uid, err := strconv.Atoi(usr.Uid)
	if err != nil {
		return model.WrapCLIError(model.ExitPrivilegeDrop,
			fmt.Sprintf("invalid uid %q for user %s", usr.Uid, usr.Username), err)
	}
	gid, err := strconv.Atoi(usr.Gid)
	if err != nil {
		return model.WrapCLIError(model.ExitPrivilegeDrop,
			fmt.Sprintf("invalid gid %q for user %s", usr.Gid, usr.Username), err)
	}

	if err := unix.Setgroups([]int{gid}); err != nil {
		return model.WrapCLIError(model.ExitPrivilegeDrop, "failed to set supplementary groups", err)
	}
	if err := unix.Setgid(gid); err != nil {
		return model.WrapCLIError(model.ExitPrivilegeDrop,
			fmt.Sprintf("failed to switch to gid %d", gid), err)
	}
	if err := unix.Setuid(uid); err != nil {
		return model.WrapCLIError(model.ExitPrivilegeDrop,
			fmt.Sprintf("failed to switch to uid %d", uid), err)
	}

	// Verify the drop actually took. Setuid on Linux applies to all
	// threads via the runtime's AllThreadsSyscall support, but a
	// misconfigured kernel security module can make it a silent no-op.
	if unix.Geteuid() == 0 {
		return model.NewCLIError(model.ExitPrivilegeDrop, "still running as root after privilege drop")
	}

	return nil
}
