// Package host exposes small host-integration helpers for the planner UI:
// application metadata and opening directories in the platform file explorer.
package host

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"plannerd/internal/common/fsutil"
)

// Version is the application version, overridable at build time via
// -ldflags "-X plannerd/internal/host.Version=...".
var Version = "0.1.0-dev"

// DefaultDataDir returns the per-user directory for planner documents.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, "plannerd"), nil
}

// OpenInExplorer opens dir in the platform file manager. The spawned process
// is not waited on; failures to launch are returned, failures inside the file
// manager are not observable.
func OpenInExplorer(dir string) error {
	path, err := fsutil.ExpandHome(dir)
	if err != nil {
		return err
	}
	if !fsutil.PathExists(path) {
		return fmt.Errorf("directory does not exist: %s", path)
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open file manager: %w", err)
	}
	// Detach; the file manager outlives the request.
	go func() { _ = cmd.Wait() }()
	return nil
}
