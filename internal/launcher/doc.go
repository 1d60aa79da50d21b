// Package launcher implements the container entrypoint shim for the
// Dogecoin Core image.
//
// On container start the shim makes one synchronous decision and one
// process replacement:
//
//  1. Dispatch: if the first container argument names a bundled executable
//     (dogecoind, dogecoin-cli, dogecoin-tx), that executable is selected
//     with the remaining arguments. Any other argument vector — including
//     an empty one or one starting with a daemon flag — selects the daemon
//     with the full vector.
//  2. Resolve: the bundled executable set is resolved against the install
//     directory once, up front. A missing or non-executable file is fatal.
//  3. Drop privileges: when started as root, the process switches to the
//     unprivileged dogecoin user before exec. Failure is fatal — the node
//     never runs as root.
//  4. Exec: the shim replaces itself with the target executable via
//     exec(2). There is no supervision, no restart policy, and no signal
//     translation; the container runtime talks to the node directly and
//     exit codes propagate verbatim.
//
// Dispatch, resolution, and environment construction are pure and portable;
// the privilege drop and exec live behind a linux build tag.
package launcher
