// Package datadir resolves where clipstash keeps its config file and
// database files.
package datadir

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the config directory relative to the home directory.
	ConfigDir = ".config/clipstash"
	// ConfigFile is the config file name inside ConfigDir.
	ConfigFile = "config.yaml"
)

// Dir is a directory that holds clipstash data files.
type Dir struct {
	root string
}

// Home returns ~/.config/clipstash.
func Home() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigDir), nil
}

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFile), nil
}

// New resolves dataDir and makes sure it exists.
// If dataDir is empty, uses ~/.config/clipstash/
// If dataDir is absolute, uses it as is
// If dataDir is relative, treats it as a subdirectory of ~/.config/clipstash/
func New(dataDir string) (*Dir, error) {
	root := dataDir
	if !filepath.IsAbs(dataDir) {
		home, err := Home()
		if err != nil {
			return nil, err
		}
		root = filepath.Join(home, dataDir)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Dir{root: root}, nil
}

// NewWithRoot creates a Dir with a custom root (for testing)
func NewWithRoot(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the root directory path
func (d *Dir) Root() string {
	return d.root
}

// Path returns the absolute path of a file inside the directory. name must
// be a valid fs path, so it cannot escape the root.
func (d *Dir) Path(name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", &fs.PathError{Op: "path", Path: name, Err: fs.ErrInvalid}
	}
	return filepath.Join(d.root, name), nil
}

// Exists reports whether name exists inside the directory.
func (d *Dir) Exists(name string) bool {
	path, err := d.Path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
