// Package config provides configuration management for the wren file manager.
package config

// Default configuration values for wren.
const (
	// DefaultOpener is the program used when no extension-specific opener
	// is configured.
	DefaultOpener = "xdg-open"

	// DefaultShowHidden is the initial hidden-file visibility.
	DefaultShowHidden = false

	// DefaultSortBy is the initial sort key.
	DefaultSortBy = "name"
)
