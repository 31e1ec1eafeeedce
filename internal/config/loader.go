package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file instead of
// searching .preproc/ under rootDir. A missing file is an error.
func NewFileLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (PREPROC_*)
// 2. Config file (.preproc/config.yml or .preproc/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".preproc"))
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("PREPROC")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., PREPROC_SCAN_CONCURRENCY)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("paths.include")
	v.BindEnv("paths.ignore")
	v.BindEnv("scan.concurrency")
	v.BindEnv("scan.cache_size")
	v.BindEnv("watch.debounce_ms")
	v.BindEnv("output.format")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("scan.concurrency", defaults.Scan.Concurrency)
	v.SetDefault("scan.cache_size", defaults.Scan.CacheSize)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	v.SetDefault("output.format", defaults.Output.Format)
}

// ResolveFolders returns the configured workspace folders, or the project root
// as the single folder when none are configured.
func (c *Config) ResolveFolders(rootDir string) []FolderConfig {
	if len(c.Folders) > 0 {
		out := make([]FolderConfig, len(c.Folders))
		copy(out, c.Folders)
		return out
	}
	return []FolderConfig{{Name: filepath.Base(rootDir), Path: rootDir}}
}
