package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Endpoint != "http://localhost:11434" {
		t.Errorf("unexpected endpoint %q", cfg.Endpoint)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != time.Hour || cfg.Cache.MaxEntries != 1000 {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Batch.MaxParallel != 4 {
		t.Errorf("unexpected batch defaults: %+v", cfg.Batch)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != Default().Endpoint {
		t.Errorf("expected defaults for missing file, got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ollo.yaml")
	data := `
endpoint: http://ollama.internal:11434
model: codellama:13b
cache:
  enabled: true
  ttl: 30m
  max_entries: 50
  dir: ${OLLO_CACHE_DIR}
history:
  enabled: false
batch:
  max_parallel: 8
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OLLO_CACHE_DIR", "/tmp/ollo-cache")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Model != "codellama:13b" {
		t.Errorf("unexpected model %q", cfg.Model)
	}
	if cfg.Cache.TTL != 30*time.Minute || cfg.Cache.MaxEntries != 50 {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Cache.Dir != "/tmp/ollo-cache" {
		t.Errorf("env not expanded: %q", cfg.Cache.Dir)
	}
	if cfg.History.Enabled {
		t.Error("history should be disabled")
	}
	if cfg.Batch.MaxParallel != 8 {
		t.Errorf("unexpected max_parallel %d", cfg.Batch.MaxParallel)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("cache: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPresetOverrides(t *testing.T) {
	cfg := Default()

	temp := 0.05
	predict := 10
	timeout := 5 * time.Second
	cfg.Presets.Fast = PresetConfig{
		Temperature: &temp,
		NumPredict:  &predict,
		Timeout:     &timeout,
	}

	p := cfg.Preset("fast")
	if p.Options.Temperature != 0.05 || p.Options.NumPredict != 10 {
		t.Errorf("overrides not applied: %+v", p.Options)
	}
	if p.Timeout != 5*time.Second {
		t.Errorf("timeout override not applied: %s", p.Timeout)
	}
	// Untouched fields keep their preset values.
	if p.Options.TopK != 10 {
		t.Errorf("unexpected top_k %d", p.Options.TopK)
	}
}

func TestPresetUnknownNameIsNormal(t *testing.T) {
	p := Default().Preset("whatever")
	if p.Name != "normal" {
		t.Errorf("expected normal preset, got %q", p.Name)
	}
}
