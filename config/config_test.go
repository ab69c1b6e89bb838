package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewManager_RequiresStorageDir(t *testing.T) {
	if _, err := NewManager("  "); !errors.Is(err, ErrStorageDirRequired) {
		t.Fatalf("expected ErrStorageDirRequired, got %v", err)
	}
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	settings, err := mgr.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", settings.Port)
	}
	if settings.RefreshMinutes != 5 {
		t.Errorf("expected default refresh 5, got %d", settings.RefreshMinutes)
	}
	if settings.OrdersBaseURL != "" || settings.TasksBaseURL != "" {
		t.Error("expected empty provider URLs (demo mode) by default")
	}
	if settings.WeekStartsMonday {
		t.Error("expected Sunday-first default")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	want := &Settings{
		Port:             9090,
		OrdersBaseURL:    "http://erp.local:4000",
		TasksBaseURL:     "http://erp.local:4001",
		RefreshMinutes:   10,
		WeekStartsMonday: true,
	}
	if err := mgr.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "settings.json")); err != nil {
		t.Fatalf("settings file missing: %v", err)
	}

	got, err := mgr.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.Load(); err == nil {
		t.Fatal("expected parse error for corrupt settings file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	t.Setenv("LOOMDESK_PORT", "9999")
	t.Setenv("LOOMDESK_ORDERS_URL", "http://override:4000")
	t.Setenv("LOOMDESK_TASKS_URL", "http://override:4001")

	settings, err := mgr.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Port != 9999 {
		t.Errorf("expected env port override, got %d", settings.Port)
	}
	if settings.OrdersBaseURL != "http://override:4000" {
		t.Errorf("orders URL override not applied: %q", settings.OrdersBaseURL)
	}
	if settings.TasksBaseURL != "http://override:4001" {
		t.Errorf("tasks URL override not applied: %q", settings.TasksBaseURL)
	}
}

func TestLoad_BadEnvPortIgnored(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	t.Setenv("LOOMDESK_PORT", "not-a-port")
	settings, err := mgr.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Port != 8080 {
		t.Errorf("bad env port must be ignored, got %d", settings.Port)
	}
}
