package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.IconThreshold != 50000 {
		t.Errorf("IconThreshold = %d, want 50000", cfg.IconThreshold)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.HistoryPath != filepath.Join(dir, HistoryFileName) {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath)
	}
}

func TestLoadFrom_File(t *testing.T) {
	dir := t.TempDir()
	content := `output_dir = "/tmp/out"
icon_threshold = "64 KiB"
workers = 8
log_level = "debug"
zip = true
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.IconThreshold != 64*1024 {
		t.Errorf("IconThreshold = %d, want %d", cfg.IconThreshold, 64*1024)
	}
	if cfg.Workers != 8 || cfg.LogLevel != "debug" || !cfg.Zip || cfg.OutputDir != "/tmp/out" {
		t.Errorf("config not applied: %+v", cfg)
	}
}

func TestLoadFrom_BadThreshold(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`icon_threshold = "lots"`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(dir); err == nil {
		t.Fatal("expected error for invalid icon_threshold")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Workers = 2
	if err := cfg.SetIconThreshold("10KB"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	again, err := LoadFrom(dir)
	if err != nil {
		t.Fatal(err)
	}
	if again.Workers != 2 || again.IconThreshold != 10000 {
		t.Errorf("reloaded config = %+v", again)
	}
}

func TestSet(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for key, value := range map[string]string{
		"output_dir":     "dist",
		"icon_threshold": "10KB",
		"workers":        "2",
		"log_level":      "DEBUG",
		"zip":            "true",
	} {
		if err := cfg.Set(key, value); err != nil {
			t.Errorf("Set(%s, %s): %v", key, value, err)
		}
	}
	if cfg.OutputDir != "dist" || cfg.IconThreshold != 10000 || cfg.Workers != 2 || cfg.LogLevel != "debug" || !cfg.Zip {
		t.Errorf("unexpected config: %+v", cfg)
	}

	for key, value := range map[string]string{
		"workers":        "0",
		"log_level":      "loud",
		"zip":            "maybe",
		"icon_threshold": "lots",
		"colour":         "red",
	} {
		if err := cfg.Set(key, value); err == nil {
			t.Errorf("Set(%s, %s) should fail", key, value)
		}
	}
}
