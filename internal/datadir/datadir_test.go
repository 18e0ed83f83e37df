package datadir

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	abs := filepath.Join(t.TempDir(), "data")

	tests := []struct {
		name    string
		dataDir string
		want    string
	}{
		{name: "default", dataDir: "", want: filepath.Join(home, ConfigDir)},
		{name: "absolute", dataDir: abs, want: abs},
		{name: "relative", dataDir: "profiles/work", want: filepath.Join(home, ConfigDir, "profiles/work")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := New(tt.dataDir)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", tt.dataDir, err)
			}
			if dir.Root() != tt.want {
				t.Errorf("Root() = %s, want %s", dir.Root(), tt.want)
			}
			if info, err := os.Stat(tt.want); err != nil || !info.IsDir() {
				t.Errorf("expected directory %s to be created", tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() failed: %v", err)
	}
	if want := filepath.Join(home, ConfigDir, ConfigFile); got != want {
		t.Errorf("ConfigPath() = %s, want %s", got, want)
	}
}

func TestPath(t *testing.T) {
	root := t.TempDir()
	dir := NewWithRoot(root)

	got, err := dir.Path("clipstash.db")
	if err != nil {
		t.Fatalf("Path() failed: %v", err)
	}
	if got != filepath.Join(root, "clipstash.db") {
		t.Errorf("Path() = %s", got)
	}

	for _, bad := range []string{"../escape", "/abs", ""} {
		if _, err := dir.Path(bad); !errors.Is(err, fs.ErrInvalid) {
			t.Errorf("Path(%q) error = %v, want fs.ErrInvalid", bad, err)
		}
	}
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	dir := NewWithRoot(root)

	if dir.Exists("clipstash.bolt") {
		t.Error("Exists() true before file was created")
	}
	if err := os.WriteFile(filepath.Join(root, "clipstash.bolt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if !dir.Exists("clipstash.bolt") {
		t.Error("Exists() false after file was created")
	}
}
