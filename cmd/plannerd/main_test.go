package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnvDefault(t *testing.T) {
	t.Setenv("PLANNERD_TEST_KEY", "")
	if got := envDefault("PLANNERD_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("PLANNERD_TEST_KEY", "set")
	if got := envDefault("PLANNERD_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("got %q", got)
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		t.Fatalf("expected version output")
	}
}

func TestModelsCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.gguf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"models", "--models-dir", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "tiny.gguf") {
		t.Fatalf("expected model in output, got %q", buf.String())
	}
}

func TestModelsCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cfg.gguf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(cfgPath, []byte("models_dir: "+dir+"\n"), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"models", "--config", cfgPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "cfg.gguf") {
		t.Fatalf("expected config-file models dir to be used, got %q", buf.String())
	}
}

func TestModelsCommandFlagBeatsConfig(t *testing.T) {
	flagDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(flagDir, "flag.gguf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(cfgPath, []byte("models_dir: /nonexistent\n"), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"models", "--config", cfgPath, "--models-dir", flagDir})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "flag.gguf") {
		t.Fatalf("expected flag models dir to win, got %q", buf.String())
	}
}
