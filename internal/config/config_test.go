package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDataDirWithExplicitEnv(t *testing.T) {
	tmpDir := t.TempDir()
	customDir := filepath.Join(tmpDir, "custom")

	t.Setenv("TRACKDB_DIR", customDir)
	t.Setenv("XDG_DATA_HOME", "")

	got := GetDataDir()
	if got != customDir {
		t.Fatalf("expected %q, got %q", customDir, got)
	}
}

func TestGetDataDirFallsBackToXDG(t *testing.T) {
	tmpDir := t.TempDir()
	xdgDir := filepath.Join(tmpDir, "xdg")

	t.Setenv("TRACKDB_DIR", "")
	t.Setenv("XDG_DATA_HOME", xdgDir)

	got := GetDataDir()
	want := filepath.Join(xdgDir, "trackdb")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGetDBPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TRACKDB_DIR", tmpDir)

	if got, want := GetDBPath(), filepath.Join(tmpDir, "library.db"); got != want {
		t.Fatalf("GetDBPath expected %q, got %q", want, got)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TRACKDB_DIR", tmpDir)
	t.Setenv("TRACKDB_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(tmpDir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Path != filepath.Join(tmpDir, "library.db") {
		t.Fatalf("unexpected database path %q", cfg.Database.Path)
	}
	if !cfg.Library.LoadDeleted {
		t.Fatalf("expected load_deleted to default to true")
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected default level warn, got %q", cfg.Logging.Level)
	}
}

func TestLoadReadsYAMLAndEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	content := `
database:
  path: /var/lib/trackdb/lib.db
logging:
  level: info
  file: /var/log/trackdb.log
library:
  load_deleted: false
  extensions: [".mp3"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TRACKDB_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Path != "/var/lib/trackdb/lib.db" {
		t.Fatalf("unexpected database path %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected env override debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.File != "/var/log/trackdb.log" || cfg.Logging.MaxBackups != 3 {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Library.LoadDeleted {
		t.Fatalf("expected load_deleted false")
	}
	if len(cfg.Library.Extensions) != 1 {
		t.Fatalf("expected one extension, got %v", cfg.Library.Extensions)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte("logging: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
