package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendBadger {
		t.Errorf("default backend = %q, want %q", cfg.Storage.Backend, BackendBadger)
	}
	if cfg.IsProduction() {
		t.Error("default config should not be production")
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guarani.toml")
	content := `
environment = "production"

[server]
port = 9090

[storage]
backend = "sheets"

[storage.sheets]
spreadsheet_id = "sheet-123"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendSheets {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendSheets)
	}
	if cfg.Storage.Sheets.SpreadsheetID != "sheet-123" {
		t.Errorf("spreadsheet_id = %q, want sheet-123", cfg.Storage.Sheets.SpreadsheetID)
	}
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GUARANI_PORT", "7001")
	t.Setenv("GUARANI_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("port = %d, want 7001", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	t.Setenv("GUARANI_STORAGE_BACKEND", "postgres")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadConfig_SheetsRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GUARANI_STORAGE_BACKEND", BackendSheets)
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when sheets backend has no spreadsheet_id")
	}
}
