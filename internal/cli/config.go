package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage configuration",
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

// configInitCmd writes a starter config file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long:  `Write a commented config file with the defaults to $HOME/.claimlens/config.yaml (or the --config path).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to find home directory: %w", err)
			}
			path = filepath.Join(home, ".claimlens", "config.yaml")
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("Wrote config to %s\n", path)
		return nil
	},
}

const starterConfig = `# Claimlens configuration
# Environment variables with the CLAIMLENS_ prefix override this file.

rules:
  # Path to a YAML coverage-rule table. Empty uses the built-in
  # Medicare-style table. See: claimlens rules init
  path: ""
  # Reload the rule table when the file changes (batch mode).
  watch: false

cache:
  enabled: true
  dir: ".claimlens-cache"
  memory_ttl: 30m
  disk_ttl: 24h

llm:
  # Extraction fallback for messy claim text: "openai", "ollama", or
  # empty to disable. Never used for coverage matching or scoring.
  provider: ""
  model: ""
  api_key: ""        # or OPENAI_API_KEY
  base_url: ""
  timeout: 30        # seconds
  max_tokens: 500
  rate_limit: 1.0    # requests/second in batch mode

concurrency:
  workers: 4

audit:
  enabled: false
  path: "claimlens-audit.db"

output:
  verbose: false
  include_footer: true
`

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
