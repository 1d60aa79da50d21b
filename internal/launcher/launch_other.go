//go:build !linux

package launcher

import (
	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// Run is only implemented on Linux: the shim exists to run inside the
// image, and the privilege drop and exec replacement are Linux calls.
// This stub keeps the module buildable on development hosts.
func Run(cfg Config, args []string) error {
	return model.NewCLIError(
		model.ExitGeneralError,
		"the entrypoint shim only runs on Linux (inside the container image)",
	)
}
