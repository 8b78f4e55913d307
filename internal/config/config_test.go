package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// envKeys lists every variable Load consults, cleared before each test.
var envKeys = []string{
	"DIR_DIFF_THEME", "DIR_DIFF_SORT", "DIR_DIFF_SHOW_HIDDEN",
	"DIR_DIFF_STATUS_TIMEOUT", "DIR_DIFF_LOG_LEVEL", "DIR_DIFF_LOG_FILE",
	"DIR_DIFF_CONTROL_SOCKET",
	"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_HEADERS",
}

// chdirTemp switches into a fresh temp dir with an empty HOME and clean env.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(origDir) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	return dir
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Theme != "dark" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "dark")
	}
	if !cfg.SortEnabled() {
		t.Error("SortEnabled: got false, want true")
	}
	if !cfg.ShowHiddenEnabled() {
		t.Error("ShowHiddenEnabled: got false, want true")
	}
	if cfg.StatusTimeout != "5s" {
		t.Errorf("StatusTimeout: got %q, want %q", cfg.StatusTimeout, "5s")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.ControlSocketDisabled() {
		t.Error("ControlSocketDisabled: got true, want false")
	}
}

func TestParseDurationOrDisable(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMs  int64
		wantErr bool
	}{
		{"empty returns fallback", "", 5000, false},
		{"zero disables", "0", 0, false},
		{"off disables", "off", 0, false},
		{"disable disables", "disable", 0, false},
		{"valid duration", "30s", 30000, false},
		{"valid short duration", "500ms", 500, false},
		{"invalid", "not-a-duration", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDurationOrDisable(tt.input, 5*time.Second)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDurationOrDisable(%q): error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.Milliseconds() != tt.wantMs {
				t.Errorf("parseDurationOrDisable(%q) = %v, want %dms", tt.input, got, tt.wantMs)
			}
		})
	}
}

func TestLoadWithoutFile(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile: got %q, want empty", cfg.ConfigFile)
	}
	if cfg.StatusTimeoutDuration != 5*time.Second {
		t.Errorf("StatusTimeoutDuration: got %v, want 5s", cfg.StatusTimeoutDuration)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)
	content := `theme: light
sort: false
show_hidden: false
status_timeout: "off"
log_level: debug
log_file: /tmp/dd.log
control_socket: "off"
otel_endpoint: http://localhost:4318
`
	if err := os.WriteFile(filepath.Join(dir, ".dir-diff.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ConfigFile != ".dir-diff.yaml" {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "light")
	}
	if cfg.SortEnabled() {
		t.Error("SortEnabled: got true, want false")
	}
	if cfg.ShowHiddenEnabled() {
		t.Error("ShowHiddenEnabled: got true, want false")
	}
	if cfg.StatusTimeoutDuration != 0 {
		t.Errorf("StatusTimeoutDuration: got %v, want 0", cfg.StatusTimeoutDuration)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFile != "/tmp/dd.log" {
		t.Errorf("LogFile: got %q", cfg.LogFile)
	}
	if !cfg.ControlSocketDisabled() {
		t.Error("ControlSocketDisabled: got false, want true")
	}
	if cfg.OTELEndpoint != "http://localhost:4318" {
		t.Errorf("OTELEndpoint: got %q", cfg.OTELEndpoint)
	}
}

func TestLoadFromHomeConfig(t *testing.T) {
	dir := chdirTemp(t)
	cfgDir := filepath.Join(dir, ".config", "dir-diff")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("theme: light\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "light")
	}
	if cfg.ConfigFile != filepath.Join(cfgDir, "config.yaml") {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	content := `theme: light
sort: false
log_level: debug
`
	if err := os.WriteFile(filepath.Join(dir, ".dir-diff.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DIR_DIFF_THEME", "dark")
	t.Setenv("DIR_DIFF_SORT", "true")
	t.Setenv("DIR_DIFF_LOG_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Theme != "dark" {
		t.Errorf("Theme: got %q, want %q (env should override file)", cfg.Theme, "dark")
	}
	if !cfg.SortEnabled() {
		t.Error("SortEnabled: got false, want true (env should override file)")
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want %q (env should override file)", cfg.LogLevel, "error")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad theme", file: "theme: solarized\n"},
		{name: "bad duration", file: "status_timeout: soon\n"},
		{name: "bad yaml", file: "theme: [unterminated\n"},
		{name: "bad sort env", env: map[string]string{"DIR_DIFF_SORT": "maybe"}},
		{name: "bad show hidden env", env: map[string]string{"DIR_DIFF_SHOW_HIDDEN": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdirTemp(t)
			if tt.file != "" {
				if err := os.WriteFile(filepath.Join(dir, ".dir-diff.yaml"), []byte(tt.file), 0644); err != nil {
					t.Fatal(err)
				}
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected Load() to fail")
			}
		})
	}
}
