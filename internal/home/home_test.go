package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultsToUserHome(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if filepath.Base(d.Path()) != DefaultDirName {
		t.Errorf("expected default dir name %s, got %s", DefaultDirName, d.Path())
	}
}

func TestDirLayout(t *testing.T) {
	d, err := New("/tmp/registrar-test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := d.SourceImagePath("abc", 3); got != "/tmp/registrar-test/source_images/abc/page_0003.png" {
		t.Errorf("unexpected source image path: %s", got)
	}
	if got := d.RecordPath("abc"); got != "/tmp/registrar-test/records/abc.json" {
		t.Errorf("unexpected record path: %s", got)
	}
	if got := d.ConfigPath(); got != "/tmp/registrar-test/config.yaml" {
		t.Errorf("unexpected config path: %s", got)
	}

	paths := d.SourceImagePaths("abc", 2)
	if len(paths) != 2 || filepath.Base(paths[1]) != "page_0002.png" {
		t.Errorf("unexpected page paths: %v", paths)
	}
}

func TestEnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	d, err := New(filepath.Join(tmpDir, "home"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if d.Exists() {
		t.Fatal("home should not exist yet")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if !d.Exists() {
		t.Fatal("home should exist after EnsureExists")
	}
	if _, err := os.Stat(d.RecordsDir()); err != nil {
		t.Errorf("records dir not created: %v", err)
	}
}
