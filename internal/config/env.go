package config

import "os"

// loadFromEnv overrides config from TASKLANE_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKLANE_STORE"); v != "" {
		cfg.Store = v
		set("store")
	}
	if v := os.Getenv("TASKLANE_DATA"); v != "" {
		cfg.Data = v
		set("data")
	}
	if v := os.Getenv("TASKLANE_THEME"); v != "" {
		cfg.Theme = v
		set("theme")
	}
	if v := os.Getenv("TASKLANE_MOUSE"); v != "" {
		cfg.Mouse = boolFromString(v)
		set("mouse")
	}
	if v := os.Getenv("TASKLANE_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("TASKLANE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TASKLANE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TASKLANE_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TASKLANE_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}
