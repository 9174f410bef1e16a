// Package home manages the registrar home directory layout.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the registrar home directory.
	DefaultDirName = ".registrar"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the registrar home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.registrar).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// SourceImagesDir returns the directory for a transcript's rendered pages.
func (d *Dir) SourceImagesDir(transcriptID string) string {
	return filepath.Join(d.path, "source_images", transcriptID)
}

// SourceImagePath returns the path to a specific page image.
// Page numbers are 1-indexed.
func (d *Dir) SourceImagePath(transcriptID string, pageNum int) string {
	return filepath.Join(d.SourceImagesDir(transcriptID), fmt.Sprintf("page_%04d.png", pageNum))
}

// SourceImagePaths returns paths for all pages of a transcript.
func (d *Dir) SourceImagePaths(transcriptID string, pageCount int) []string {
	paths := make([]string, pageCount)
	for i := 1; i <= pageCount; i++ {
		paths[i-1] = d.SourceImagePath(transcriptID, i)
	}
	return paths
}

// EnsureSourceImagesDir creates the source images directory for a transcript.
func (d *Dir) EnsureSourceImagesDir(transcriptID string) error {
	return os.MkdirAll(d.SourceImagesDir(transcriptID), 0o755)
}

// RecordsDir returns the directory for consolidated transcript records.
func (d *Dir) RecordsDir() string {
	return filepath.Join(d.path, "records")
}

// RecordPath returns the path for a transcript's consolidated record.
func (d *Dir) RecordPath(transcriptID string) string {
	return filepath.Join(d.RecordsDir(), transcriptID+".json")
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.RecordsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create records directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}
