// Package config provides centralized configuration for the panel data
// tools. It layers configuration from multiple sources and exposes a
// type-safe API for the rest of the module.
//
// # Configuration Sources
//
// Configuration is loaded in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern PANEL_* for namespacing:
//
//	PANEL_LOGGING_LEVEL=debug
//	PANEL_PATHS_DATA_DIR=/srv/panel/data
//	PANEL_LOADER_WORKERS=8
//	PANEL_EXPORT_GZIP=true
//
// # Path Management
//
// The Paths type resolves the directory layout once and hands out typed
// accessors:
//
//	paths := config.NewPaths(cfg.Paths)
//	if err := paths.EnsureDirectories(); err != nil { ... }
//	out := paths.SnapshotCSV(date)
//
// # Usage
//
// Load configuration at process startup:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// The merged configuration is validated at load time; invalid values
// (unknown log level, zero workers, missing data directory) fail fast.
package config
