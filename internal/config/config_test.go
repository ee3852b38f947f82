package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EISEN_CONFIG_DIR", dir)

	cfg := DefaultConfig()
	if cfg.Backend != BackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", cfg.Backend)
	}
	if cfg.DBPath != filepath.Join(dir, "eisen.sqlite") {
		t.Fatalf("expected db under config dir, got %q", cfg.DBPath)
	}
	if cfg.Speech.Locale != "pt-BR" || cfg.Grouping.Threshold != 0.75 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("EISEN_CONFIG_DIR", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Web.Addr != "127.0.0.1:8080" {
		t.Fatalf("expected default addr, got %q", cfg.Web.Addr)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EISEN_CONFIG_DIR", dir)
	path := filepath.Join(dir, "config.yaml")
	body := `backend: memory
speech:
  locale: en-US
  slow: true
sheets:
  spreadsheet: from-file
grouping:
  threshold: 0.9
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("EISEN_SHEETS_SPREADSHEET", "from-env")
	t.Setenv("GOOGLE_API_KEY", "legacy-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Fatalf("expected file backend, got %q", cfg.Backend)
	}
	if cfg.Speech.Locale != "en-US" || !cfg.Speech.Slow {
		t.Fatalf("expected file speech settings, got %+v", cfg.Speech)
	}
	if cfg.Sheets.Spreadsheet != "from-env" {
		t.Fatalf("expected env to win over file, got %q", cfg.Sheets.Spreadsheet)
	}
	if cfg.Google.APIKey != "legacy-key" {
		t.Fatalf("expected GOOGLE_API_KEY fallback, got %q", cfg.Google.APIKey)
	}
	if cfg.Grouping.Threshold != 0.9 {
		t.Fatalf("expected threshold 0.9, got %v", cfg.Grouping.Threshold)
	}
	if cfg.Sheets.TasksSheet != "Tasks" {
		t.Fatalf("expected default tasks sheet to survive partial file, got %q", cfg.Sheets.TasksSheet)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("EISEN_CONFIG_DIR", t.TempDir())
	t.Setenv("EISEN_BACKEND", "postgres")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EISEN_CONFIG_DIR", dir)
	t.Setenv("EISEN_GOOGLE_API_KEY", "secret")
	path := filepath.Join(dir, "nested", "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(b) == 0 || strings.Contains(string(b), "secret") {
		t.Fatalf("unexpected config contents:\n%s", b)
	}
	if err := WriteDefault(path); err == nil {
		t.Fatalf("expected second write to refuse overwrite")
	}

	t.Setenv("EISEN_GOOGLE_API_KEY", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Fatalf("expected sqlite from written defaults, got %q", cfg.Backend)
	}
}
