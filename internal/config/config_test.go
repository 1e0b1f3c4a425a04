package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/dtg01100/clickwheel/internal/errors"
	"github.com/dtg01100/clickwheel/internal/models"
)

// useTempConfigDir points the config package at a fresh temporary directory.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origGetConfigDir := getConfigDir
	getConfigDir = func() (string, error) { return tmpDir, nil }
	t.Cleanup(func() { getConfigDir = origGetConfigDir })
	return tmpDir
}

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := newConfigWithDefaults("/tmp/clickwheel")

	if cfg.Version != "1.0" {
		t.Errorf("Version = %q, want %q", cfg.Version, "1.0")
	}
	if cfg.Device.Theme != "silver" {
		t.Errorf("Device.Theme = %q, want silver", cfg.Device.Theme)
	}
	if cfg.Device.Side != "front" {
		t.Errorf("Device.Side = %q, want front", cfg.Device.Side)
	}
	if cfg.Service.Selected != "" {
		t.Errorf("Service.Selected = %q, want empty", cfg.Service.Selected)
	}
	if cfg.Log.File != filepath.Join("/tmp/clickwheel", "clickwheel.log") {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}
	if cfg.Log.Level != "INFO" {
		t.Errorf("Log.Level = %q, want INFO", cfg.Log.Level)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Device.Theme != "silver" || cfg.Device.Side != "front" {
		t.Errorf("Load() device = %+v, want defaults", cfg.Device)
	}
}

func TestLoadExistingConfig(t *testing.T) {
	tmpDir := useTempConfigDir(t)

	content := `version: "1.0"
device:
  theme: u2
  side: back
service:
  selected: spotify
auth:
  spotify:
    authorized: true
    session_id: abc
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device.Theme != "u2" || cfg.Device.Side != "back" {
		t.Errorf("Device = %+v, want u2/back", cfg.Device)
	}
	if cfg.Service.Selected != "spotify" {
		t.Errorf("Service.Selected = %q, want spotify", cfg.Service.Selected)
	}
	if !cfg.Auth.Spotify.Authorized || cfg.Auth.Spotify.SessionID != "abc" {
		t.Errorf("Auth.Spotify = %+v", cfg.Auth.Spotify)
	}
	if cfg.Auth.Apple.Authorized {
		t.Error("Auth.Apple should default to signed out")
	}
	if cfg.Log.MaxBackups != 3 {
		t.Errorf("Log.MaxBackups = %d, want default 3", cfg.Log.MaxBackups)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	tmpDir := useTempConfigDir(t)

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("device: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if !errors.Is(err, apperrors.ErrConfigInvalid) {
		t.Errorf("Load() error = %v, want ErrConfigInvalid", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := useTempConfigDir(t)

	cfg := newConfigWithDefaults(tmpDir)
	signedIn := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg.ApplyState(models.State{
		Theme:   models.ThemeBlack,
		Side:    models.SideBack,
		Service: models.ServiceApple,
		Apple:   models.Session{Authorized: true, SessionID: "s-1", SignedInAt: signedIn},
	})

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	state := loaded.State()
	if state.Theme != models.ThemeBlack || state.Side != models.SideBack {
		t.Errorf("device = %s/%s, want black/back", state.Theme, state.Side)
	}
	if state.Service != models.ServiceApple {
		t.Errorf("Service = %q, want apple", state.Service)
	}
	if !state.Apple.Authorized || state.Apple.SessionID != "s-1" {
		t.Errorf("Apple = %+v", state.Apple)
	}
	if !state.Apple.SignedInAt.Equal(signedIn) {
		t.Errorf("SignedInAt = %v, want %v", state.Apple.SignedInAt, signedIn)
	}
	if state.Spotify.Authorized {
		t.Error("Spotify should be signed out")
	}
}

func TestSaveCreatesDirectoryAndBackup(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "nested", "clickwheel")
	origGetConfigDir := getConfigDir
	getConfigDir = func() (string, error) { return configDir, nil }
	defer func() { getConfigDir = origGetConfigDir }()

	cfg := newConfigWithDefaults(configDir)
	if err := cfg.Save(); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	if has, _ := HasBackup(); has {
		t.Error("first save should not create a backup")
	}

	cfg.Device.Theme = "black"
	if err := cfg.Save(); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	has, err := HasBackup()
	if err != nil || !has {
		t.Fatalf("HasBackup() = %v, %v; want true", has, err)
	}

	backup, err := os.ReadFile(filepath.Join(configDir, "config.yaml.bak"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(backup), "silver") {
		t.Errorf("backup should hold the previous theme, got:\n%s", backup)
	}
}

func TestRestoreFromBackup(t *testing.T) {
	useTempConfigDir(t)

	if err := RestoreFromBackup(); !errors.Is(err, apperrors.ErrNoBackup) {
		t.Fatalf("RestoreFromBackup() without backup = %v, want ErrNoBackup", err)
	}

	cfg, _ := Load()
	cfg.Device.Theme = "black"
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}
	cfg.Device.Theme = "u2"
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	if err := RestoreFromBackup(); err != nil {
		t.Fatalf("RestoreFromBackup() error = %v", err)
	}

	restored, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if restored.Device.Theme != "black" {
		t.Errorf("restored theme = %q, want black", restored.Device.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"selected service", func(c *Config) { c.Service.Selected = "spotify" }, false},
		{"bad theme", func(c *Config) { c.Device.Theme = "gold" }, true},
		{"bad side", func(c *Config) { c.Device.Side = "top" }, true},
		{"bad service", func(c *Config) { c.Service.Selected = "tidal" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfigWithDefaults(t.TempDir())
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperrors.ErrConfigInvalid) {
				t.Errorf("Validate() error = %v, want ErrConfigInvalid", err)
			}
		})
	}
}

func TestState_InvalidValuesFallBack(t *testing.T) {
	cfg := &Config{
		Device:  DeviceConfig{Theme: "gold", Side: "top"},
		Service: ServiceConfig{Selected: "tidal"},
		Auth:    AuthConfig{Spotify: SessionConfig{Authorized: true, SignedInAt: "not a time"}},
	}

	state := cfg.State()
	if state.Theme != models.ThemeSilver || state.Side != models.SideFront {
		t.Errorf("device = %s/%s, want silver/front", state.Theme, state.Side)
	}
	if state.Service != models.ServiceNone {
		t.Errorf("Service = %q, want none", state.Service)
	}
	if !state.Spotify.Authorized || !state.Spotify.SignedInAt.IsZero() {
		t.Errorf("Spotify = %+v", state.Spotify)
	}
}

func TestPersist(t *testing.T) {
	tmpDir := useTempConfigDir(t)
	cfg := newConfigWithDefaults(tmpDir)

	state := models.DefaultState()
	state.Theme = models.ThemeU2
	if err := cfg.Persist(state); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Device.Theme != "u2" {
		t.Errorf("persisted theme = %q, want u2", loaded.Device.Theme)
	}
}

func TestExportImport(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "export", "settings"+ext)

			src := newConfigWithDefaults(dir)
			src.Device = DeviceConfig{Theme: "black", Side: "back"}
			src.Service.Selected = "spotify"
			src.Auth.Spotify = SessionConfig{Authorized: true, SessionID: "secret"}

			if err := src.ExportConfig(path); err != nil {
				t.Fatalf("ExportConfig() error = %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if strings.Contains(string(raw), "secret") {
				t.Error("export should not contain session IDs")
			}

			dst := newConfigWithDefaults(dir)
			if err := dst.ImportConfig(path); err != nil {
				t.Fatalf("ImportConfig() error = %v", err)
			}
			if dst.Device != src.Device {
				t.Errorf("Device = %+v, want %+v", dst.Device, src.Device)
			}
			if dst.Service.Selected != "spotify" {
				t.Errorf("Service.Selected = %q, want spotify", dst.Service.Selected)
			}
			if dst.Auth.Spotify.Authorized {
				t.Error("import must not touch auth sessions")
			}
		})
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	cfg := newConfigWithDefaults(t.TempDir())
	err := cfg.ExportConfig(filepath.Join(t.TempDir(), "settings.toml"))
	if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Errorf("ExportConfig(.toml) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestImportRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("version: \"1.0\"\ndevice:\n  theme: gold\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := newConfigWithDefaults(dir)
	if err := cfg.ImportConfig(path); !errors.Is(err, apperrors.ErrConfigInvalid) {
		t.Fatalf("ImportConfig() error = %v, want ErrConfigInvalid", err)
	}
	if cfg.Device.Theme != "silver" {
		t.Errorf("failed import changed theme to %q", cfg.Device.Theme)
	}
}

func TestImportEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := newConfigWithDefaults(dir)
	if err := cfg.ImportConfig(path); !errors.Is(err, apperrors.ErrConfigInvalid) {
		t.Errorf("ImportConfig() error = %v, want ErrConfigInvalid", err)
	}
}

func TestImportMissingFile(t *testing.T) {
	cfg := newConfigWithDefaults(t.TempDir())
	if err := cfg.ImportConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("ImportConfig() should fail for a missing file")
	}
}
