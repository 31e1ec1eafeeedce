package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptyInclude indicates no include patterns
	ErrEmptyInclude = errors.New("empty include patterns")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidConcurrency indicates a non-positive scan concurrency
	ErrInvalidConcurrency = errors.New("invalid scan concurrency")

	// ErrInvalidCacheSize indicates a negative cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrInvalidDebounce indicates a non-positive watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidFolder indicates a malformed workspace folder entry
	ErrInvalidFolder = errors.New("invalid workspace folder")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateFolders(cfg.Folders); err != nil {
		errs = append(errs, err)
	}

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}

	if cfg.Watch.DebounceMs <= 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms must be positive, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMs))
	}

	switch strings.ToLower(cfg.Output.Format) {
	case "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'text', 'json' or 'yaml', got '%s'", ErrInvalidFormat, cfg.Output.Format))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude))
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateFolders(folders []FolderConfig) error {
	var errs []error

	names := make(map[string]bool)
	for i, f := range folders {
		if strings.TrimSpace(f.Path) == "" {
			errs = append(errs, fmt.Errorf("%w: folder %d has no path", ErrInvalidFolder, i))
		}
		if f.Name == "" {
			continue
		}
		if names[f.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate folder name '%s'", ErrInvalidFolder, f.Name))
		}
		names[f.Name] = true
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateScan(cfg *ScanConfig) error {
	var errs []error

	if cfg.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConcurrency, cfg.Concurrency))
	}

	// Zero disables the cache
	if cfg.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size cannot be negative, got %d", ErrInvalidCacheSize, cfg.CacheSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The result still matches every joined sentinel with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return &validationError{
		msg:  fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - ")),
		errs: errs,
	}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
