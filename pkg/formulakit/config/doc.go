/*
Package config loads formulakit settings from YAML or JSON.

# Overview

Config wraps a map[string]any and provides typed accessors that fall back
to a default when a key is missing or has the wrong type. LoadSettings
builds a Settings value from a Config, and Settings.EngineOptions turns it
into formulakit engine options.

# Basic Usage

	cfg, err := config.FromFile("formulakit.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	settings := config.LoadSettings(cfg)
	engine := formulakit.New(settings.EngineOptions()...)

# Keys

	max_formula_length  int     maximum formula length in bytes (4096)
	max_tokens          int     maximum tokens per formula (1024)
	unary_operators     bool    accept prefix signs (true)
	cache_size          int     compiled program cache size, <= 0 = off (256)
	store_path          string  SQLite path for formula definitions (":memory:")
	log_level           string  debug, info, warn, error ("info")
	metrics             bool    record OpenTelemetry metrics (false)
	tracing             bool    record OpenTelemetry spans (false)

Keys may be placed at the top level or under a "formulakit" section.

# Thread Safety

Config is safe for concurrent reads. The underlying map is not modified
after creation.
*/
package config
