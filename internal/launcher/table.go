package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/dogecoin-container/internal/model"
)

// Table maps each bundled executable to its resolved filesystem path.
// It is built once at startup from the install directory, so a layout
// mismatch (an image built with a different executable set than this
// launcher expects) surfaces immediately rather than on first dispatch
// to the missing tool.
type Table map[model.Executable]string

// ResolveTable resolves the full bundled executable set against the
// install directory. Every entry must exist as a regular file with the
// execute bit set.
//
// Returns a CLIError with ExitExecutableNotFound naming all missing or
// unusable entries at once, so a broken image build produces one complete
// diagnostic instead of failing piecemeal.
func ResolveTable(installDir string) (Table, error) {
	table := make(Table, len(model.KnownExecutables()))

	var missing []string
	for _, exe := range model.KnownExecutables() {
		path := filepath.Join(installDir, exe.String())
		if err := checkExecutable(path); err != nil {
			missing = append(missing, fmt.Sprintf("%s (%v)", exe, err))
			continue
		}
		table[exe] = path
	}

	if len(missing) > 0 {
		return nil, model.NewCLIError(
			model.ExitExecutableNotFound,
			fmt.Sprintf("install directory %s does not match the expected distribution: %s",
				installDir, strings.Join(missing, "; ")),
		)
	}

	return table, nil
}

// Path returns the resolved path for the given executable.
// Returns a CLIError with ExitExecutableNotFound if the executable is not
// in the table. With a table built by ResolveTable this cannot happen for
// a valid Executable, but the check keeps the failure mode explicit.
func (t Table) Path(exe model.Executable) (string, error) {
	path, ok := t[exe]
	if !ok {
		return "", model.NewCLIError(
			model.ExitExecutableNotFound,
			fmt.Sprintf("executable %q is not installed", exe),
		)
	}
	return path, nil
}

// checkExecutable verifies that path is a regular file with at least one
// execute bit set. Symlinks are followed (os.Stat), matching what exec(2)
// will do.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("not found")
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file")
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("not executable")
	}
	return nil
}
