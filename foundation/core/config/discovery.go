// File: discovery.go
// Title: Configuration File Discovery Implementation
// Description: Finds the configuration file that applies to a listfile by
//              walking from its directory towards the filesystem root.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2026-10-18 v0.2.0: Parent directory walk with listfmt file names

package config

import (
	"os"
	"path/filepath"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
)

// DiscoveryOptions defines options for automatic configuration file discovery
type DiscoveryOptions struct {
	// Filenames are tried in order in every directory
	Filenames []string
	// StopAt ends the walk after this directory, empty walks to the root
	StopAt string
}

// DefaultDiscoveryOptions returns the default file names
func DefaultDiscoveryOptions() DiscoveryOptions {
	return DiscoveryOptions{
		Filenames: []string{
			".listfmt.toml", ".listfmt.yaml", ".listfmt.yml", ".listfmt.json",
			"listfmt.toml", "listfmt.yaml", "listfmt.yml", "listfmt.json",
			".cmake-format.yaml", ".cmake-format.json",
		},
	}
}

// FindConfigFile searches startDir and its parents for a configuration
// file without loading it. The boolean is false when none exists.
func FindConfigFile(startDir string, options DiscoveryOptions) (string, bool) {
	if len(options.Filenames) == 0 {
		options.Filenames = DefaultDiscoveryOptions().Filenames
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	stop := ""
	if options.StopAt != "" {
		if abs, err := filepath.Abs(options.StopAt); err == nil {
			stop = abs
		}
	}

	for {
		for _, name := range options.Filenames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir || dir == stop {
			return "", false
		}
		dir = parent
	}
}

// Discover loads the configuration file applying to startDir, or the
// defaults when there is none
func Discover(startDir string, options DiscoveryOptions) (*Config, error) {
	path, ok := FindConfigFile(startDir, options)
	if !ok {
		return Default(), nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "found config file but failed to load it").
			WithDetail("configPath", path)
	}
	return cfg, nil
}

// ListPossibleConfigFiles returns the candidate paths for startDir, nearest
// first
func ListPossibleConfigFiles(startDir string, options DiscoveryOptions) []string {
	if len(options.Filenames) == 0 {
		options.Filenames = DefaultDiscoveryOptions().Filenames
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	var paths []string
	for {
		for _, name := range options.Filenames {
			paths = append(paths, filepath.Join(dir, name))
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return paths
		}
		dir = parent
	}
}
