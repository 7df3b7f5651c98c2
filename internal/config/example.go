package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklane configuration file
# Values can be overridden by TASKLANE_* environment variables or CLI flags

# Storage backend: file, sqlite or memory
store = "file"

# Store location. Empty keeps it in .tasklane/ under the working directory:
# .tasklane/store/ for the file backend, .tasklane/store.db for sqlite
# data = "~/todo/store.db"

# Theme used until one is toggled and saved: dark or light
theme = "dark"

# Enable mouse click and drag-to-reorder in the TUI
mouse = true

# Log directory (supports ~ and $VAR expansion)
log_dir = "~/.tasklane/logs"

# Logging: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}
