package config

// Config represents the complete preproc configuration.
// It can be loaded from .preproc/config.yml with environment variable overrides.
type Config struct {
	Paths   PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Folders []FolderConfig `yaml:"folders" mapstructure:"folders"`
	Scan    ScanConfig     `yaml:"scan" mapstructure:"scan"`
	Watch   WatchConfig    `yaml:"watch" mapstructure:"watch"`
	Output  OutputConfig   `yaml:"output" mapstructure:"output"`
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for AL files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// FolderConfig names one project root of a multi-root workspace.
// Relative paths are resolved against the project root.
type FolderConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	Path string `yaml:"path" mapstructure:"path"`
}

// ScanConfig tunes the scan pipeline.
type ScanConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"` // parallel file reads
	CacheSize   int `yaml:"cache_size" mapstructure:"cache_size"`   // cached file results, 0 disables
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before a rescan
}

// OutputConfig selects how trees are rendered.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "text", "json" or "yaml"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.al",
			},
			Ignore: []string{
				"node_modules/**",
				"**/node_modules/**",
				".alpackages/**",
				"**/.alpackages/**",
				".git/**",
				".snapshots/**",
			},
		},
		Folders: nil, // Empty means the project root is the only folder
		Scan: ScanConfig{
			Concurrency: 8,
			CacheSize:   10000,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// GetSourceExtensions extracts unique file extensions from include patterns.
// Returns extensions with leading dot (e.g., []string{".al"}).
func (c *Config) GetSourceExtensions() []string {
	seen := make(map[string]bool)
	var extensions []string
	for _, pattern := range c.Paths.Include {
		if ext := extractExtension(pattern); ext != "" && !seen[ext] {
			seen[ext] = true
			extensions = append(extensions, ext)
		}
	}
	return extensions
}

// extractExtension extracts the file extension from a glob pattern.
// Returns empty string if pattern doesn't match a simple extension pattern.
// Examples: "**/*.al" -> ".al", "*.dal" -> ".dal", "src/*" -> ""
func extractExtension(pattern string) string {
	// Find the last occurrence of *.ext pattern
	for i := len(pattern) - 1; i >= 1; i-- {
		if pattern[i] == '.' && pattern[i-1] == '*' {
			return pattern[i:]
		}
	}
	return ""
}
