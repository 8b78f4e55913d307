package control

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSocketPath returns the control socket path used when none is
// configured: $XDG_RUNTIME_DIR/dir-diff/control.sock, falling back to a
// per-user directory under the system temp dir.
func DefaultSocketPath() string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir != "" {
		return filepath.Join(runtimeDir, "dir-diff", "control.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("dir-diff-%d", os.Getuid()), "control.sock")
}
