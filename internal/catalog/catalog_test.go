package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestScanDirFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zeta.gguf", 10)
	writeFile(t, dir, "alpha.gguf", 20)
	writeFile(t, dir, "notes.txt", 5)
	writeFile(t, dir, "UPPER.GGUF", 5)
	if err := os.Mkdir(filepath.Join(dir, "sub.gguf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	models, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(models) != 3 {
		t.Fatalf("expected 3 models, got %d: %+v", len(models), models)
	}
	// sorted by name; case-sensitive sort puts UPPER first
	if models[0].Name != "UPPER.GGUF" || models[1].Name != "alpha.gguf" || models[2].Name != "zeta.gguf" {
		t.Fatalf("unexpected order: %v %v %v", models[0].Name, models[1].Name, models[2].Name)
	}
	if models[1].SizeBytes != 20 {
		t.Fatalf("unexpected size: %d", models[1].SizeBytes)
	}
	if models[1].SizeFormatted == "" || models[1].Modified == 0 {
		t.Fatalf("expected formatted size and modified time: %+v", models[1])
	}
	if !filepath.IsAbs(models[1].Path) {
		t.Fatalf("expected absolute path, got %q", models[1].Path)
	}
}

func TestScanDirEmpty(t *testing.T) {
	models, err := ScanDir(t.TempDir())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(models) != 0 {
		t.Fatalf("expected no models, got %d", len(models))
	}
}

func TestScanDirMissing(t *testing.T) {
	if _, err := ScanDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tiny.gguf", 2048)
	m, err := Describe(p)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if m.Name != "tiny.gguf" || m.SizeBytes != 2048 {
		t.Fatalf("unexpected descriptor: %+v", m)
	}
	if m.SizeFormatted != "2.0 KiB" {
		t.Fatalf("unexpected formatted size: %q", m.SizeFormatted)
	}
	if _, err := Describe(dir); err == nil {
		t.Fatalf("expected error for directory")
	}
	if _, err := Describe(filepath.Join(dir, "missing.gguf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
