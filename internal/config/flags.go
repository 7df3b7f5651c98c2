package config

import "flag"

// flagFields maps flag names to config field names for source tracking.
var flagFields = map[string]string{
	"store":          "store",
	"data":           "data",
	"theme":          "theme",
	"mouse":          "mouse",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs, bound to cfg, and parses args.
// If sources is non-nil, explicitly set flags are recorded.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklane", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.Store, "store", cfg.Store, "Storage backend (file|sqlite|memory)")
	fs.StringVar(&cfg.Data, "data", cfg.Data, "Store location (directory for file, database for sqlite)")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "Theme used until one is saved (dark|light)")
	fs.BoolVar(&cfg.Mouse, "mouse", cfg.Mouse, "Enable mouse click and drag in the TUI")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
