package control

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSocketPath(t *testing.T) {
	t.Run("runtime dir", func(t *testing.T) {
		t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
		want := filepath.Join("/run/user/1000", "dir-diff", "control.sock")
		if got := DefaultSocketPath(); got != want {
			t.Errorf("DefaultSocketPath() = %q, want %q", got, want)
		}
	})

	t.Run("temp fallback", func(t *testing.T) {
		t.Setenv("XDG_RUNTIME_DIR", "")
		want := filepath.Join(os.TempDir(), fmt.Sprintf("dir-diff-%d", os.Getuid()), "control.sock")
		if got := DefaultSocketPath(); got != want {
			t.Errorf("DefaultSocketPath() = %q, want %q", got, want)
		}
	})
}
