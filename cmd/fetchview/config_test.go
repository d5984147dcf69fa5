package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("got %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fetchview.yaml")
	data := "dir: ./app\nport: 9090\nopen: false\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Dir != "./app" || cfg.Port != 9090 || cfg.Open {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Output != "dist" {
		t.Errorf("Output = %q, want default dist", cfg.Output)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"syntax.yaml": "port: [",
		"port.yaml":   "port: 70000\n",
		"dir.yaml":    "dir: \"\"\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := newServeCommand()
	if err := cmd.ParseFlags([]string{"--port", "9000"}); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Open = false
	if err := applyFlags(cmd, []string{"./other"}, cfg); err != nil {
		t.Fatalf("applyFlags error: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.Open {
		t.Error("unset --open flag must not override the config file")
	}
	if cfg.Dir != "./other" {
		t.Errorf("Dir = %q, want ./other", cfg.Dir)
	}
}
