package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateAndLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "myapp")

	if err := Create(name); err != nil {
		t.Fatalf("Create(%q) returned error: %v", name, err)
	}
	if !Exists(name) {
		t.Fatalf("Exists(%q) = false after Create", name)
	}

	m, err := Load(name)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", name, err)
	}
	if m.Name != name {
		t.Errorf("Name = %q, want %q", m.Name, name)
	}
	if m.Version != "0.1.0" {
		t.Errorf("Version = %q, want 0.1.0", m.Version)
	}

	if _, err := os.Stat(EntryPath(name)); err != nil {
		t.Errorf("entry point not written: %v", err)
	}
}

func TestCreateRejectsExisting(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "dup")
	if err := Create(name); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if err := Create(name); err == nil {
		t.Error("second Create of the same name should have failed")
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	if err := Create(""); err == nil {
		t.Error("Create(\"\") should have failed")
	}
}

func TestLoadMissingProject(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Error("Load of a directory with no project.asml should have failed")
	}
	if Exists(dir) {
		t.Error("Exists should be false for a directory with no project")
	}
}
