package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Saham Analyst Configuration

[webhook]
# Analysis webhook endpoint (POST, body {"prompt": "<TICKER>"})
analysis_url = ""
# News webhook endpoint (same request shape)
news_url = ""
# Request timeout (e.g., "30s")
timeout = "30s"

[cache]
# Cached analyses older than this are served immediately but refreshed
# in the background (e.g., "60m", "6h")
stale_threshold = "60m"
# SQLite file backing the cache. Leave empty for in-memory only.
db_path = ""

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to console
console = true
# Log to rotating file
file = true

[ui]
# Enable colored output
color_enabled = true
# Annotate cached answers with their age
show_age = true
`

// createTemplateConfig writes a template config file for first-time setup.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Created template config at %s\n", path)
	return nil
}
