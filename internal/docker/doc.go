// Package docker wraps the Docker Engine SDK for managing packaged node
// containers.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//   - The dogecoin.* label schema used to persist node metadata on
//     containers (labels are the sole state storage — no state files)
//   - Node container lifecycle: run, list, start, stop, remove
//
// The package uses github.com/docker/docker/client as the underlying SDK,
// with API version negotiation enabled for broad daemon compatibility.
package docker
