package config

import (
	"log/slog"
	"strings"

	"github.com/randalmurphal/formulakit/pkg/formulakit"
)

// Settings are the recognised formulakit options.
type Settings struct {
	MaxFormulaLength int
	MaxTokens        int
	UnaryOperators   bool
	CacheSize        int
	StorePath        string
	LogLevel         string
	Metrics          bool
	Tracing          bool
}

// DefaultSettings returns the settings used when a key is absent.
func DefaultSettings() Settings {
	return Settings{
		MaxFormulaLength: formulakit.DefaultMaxLength,
		MaxTokens:        formulakit.DefaultMaxTokens,
		UnaryOperators:   true,
		CacheSize:        256,
		StorePath:        ":memory:",
		LogLevel:         "info",
	}
}

// LoadSettings reads Settings from cfg. Keys may sit at the top level or
// under a "formulakit" section; the section wins.
//
//	formulakit:
//	  max_formula_length: 2048
//	  max_tokens: 512
//	  unary_operators: true
//	  cache_size: 128        # 0 or less disables the program cache
//	  store_path: ./formulas.db
//	  log_level: debug
//	  metrics: true
//	  tracing: false
func LoadSettings(cfg Config) Settings {
	if cfg.Has("formulakit") {
		cfg = cfg.Section("formulakit")
	}
	d := DefaultSettings()
	return Settings{
		MaxFormulaLength: cfg.Int("max_formula_length", d.MaxFormulaLength),
		MaxTokens:        cfg.Int("max_tokens", d.MaxTokens),
		UnaryOperators:   cfg.Bool("unary_operators", d.UnaryOperators),
		CacheSize:        cfg.Int("cache_size", d.CacheSize),
		StorePath:        cfg.String("store_path", d.StorePath),
		LogLevel:         cfg.String("log_level", d.LogLevel),
		Metrics:          cfg.Bool("metrics", d.Metrics),
		Tracing:          cfg.Bool("tracing", d.Tracing),
	}
}

// EngineOptions converts the settings into engine options. A cache size
// of zero or less disables the program cache; there is no unbounded
// setting, since previews cache arbitrary editor text.
func (s Settings) EngineOptions() []formulakit.Option {
	opts := []formulakit.Option{
		formulakit.WithMaxLength(s.MaxFormulaLength),
		formulakit.WithMaxTokens(s.MaxTokens),
		formulakit.WithUnaryOperators(s.UnaryOperators),
	}
	if s.CacheSize > 0 {
		opts = append(opts, formulakit.WithCache(s.CacheSize))
	}
	return opts
}

// Level maps LogLevel to a slog level. Unknown names yield slog.LevelInfo.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
