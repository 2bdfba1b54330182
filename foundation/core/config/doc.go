// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package config loads, validates and discovers formatter and
//              linter configuration in TOML, YAML or JSON.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-18 v0.2.0: Typed formatter configuration, JSON, fsnotify watching

/*
Package config provides the configuration of the listfile formatter and
linter.

Key Features:
  • TOML, YAML and JSON files with detection by extension
  • Sectioned keys (format, markup, lint) and flat cmake-format style keys
  • Unknown keys rejected with a closest-match suggestion
  • Per-command overrides and additional command grammars
  • Discovery by walking parent directories
  • File watching with debounced change notification

# Loading

	cfg, err := config.Load(".listfmt.toml")
	if err != nil {
		return err
	}
	width := cfg.ForCommand("install").LineWidth

A file only needs the keys it changes; everything else keeps its default:

	[format]
	line_width = 100
	dangle_parens = true

	[per_command.set]
	max_subargs_per_line = 2

	[additional_commands.foo]
	pargs = "+"
	flags = ["QUIET"]
	kwargs = { DEPENDS = "*" }

# Discovery

Discover walks from a directory towards the root and loads the first file
named in DiscoveryOptions, returning Default when none exists.

# Errors

Read failures carry CodeMissingConfig or CodeConfigError, malformed content
CodeConfigError and failed validation CodeInvalidConfig. Validation reports
every violation at once.
*/
package config
