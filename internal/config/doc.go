// Package config provides centralized configuration management for scopeplot.
// It loads configuration from multiple sources, validates it and resolves the
// directories a batch run works in.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// Command-line flags are applied by the caller after Load returns.
//
// # Environment Variables
//
// All environment variables follow the pattern SCOPE_<SECTION>_<KEY>:
//
//	SCOPE_BATCH_WORKERS=8
//	SCOPE_PATHS_INPUT_DIR=/data/captures
//	SCOPE_LOGGING_LEVEL=debug
//	SCOPE_RENDER_DPI=150
//
// # Configuration File
//
// When no path is given, Load looks for scopeplot.yaml and then
// configs/scopeplot.yaml in the working directory:
//
//	paths:
//	  input_dir: report_template/csv
//	  output_dir: graphs
//	batch:
//	  workers: 8
//	  filter_sets: true
//	render:
//	  dpi: 150
//
// # Validation
//
// Every field carries a go-playground/validator tag. Validation errors name
// the offending key by its YAML path, e.g. "batch.workers: failed min=1".
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	paths, err := config.ResolvePaths(cfg.Paths, "")
package config
