// Package config provides configuration management for spotify-downloader.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Conversion to the per-package configs (model, audio)
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Writes "{artists} - {title}.ogg" into the current directory
//	// Tags with vorbiscomment
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	// A missing file yields the defaults
//
// Files ending in .yaml or .yml are read as YAML, everything else as JSON.
package config
