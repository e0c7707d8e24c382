// Package sources manages the configuration of the per-storefront data
// sources feeding the pipeline.
package sources

import (
	"errors"
	"fmt"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
)

// Common errors returned by the sources package.
var (
	// ErrNoSources is returned when no sources are configured.
	ErrNoSources = errors.New("no sources configured")
	// ErrUnknownSource is returned when a configured source name is not a
	// recognised storefront.
	ErrUnknownSource = errors.New("unknown source")
	// ErrDuplicateSource is returned when the same source is configured twice.
	ErrDuplicateSource = errors.New("duplicate source")
	// ErrMissingFile is returned when a source has no input file configured.
	ErrMissingFile = errors.New("source has no input file")
)

// Config represents one configured source: the storefront it identifies and
// the scraped batch file it loads.
type Config struct {
	// Name is the storefront tag (must be a valid domain.Source).
	Name string `mapstructure:"name" yaml:"name"`
	// File is the path to the source's scraped CSV batch.
	File string `mapstructure:"file" yaml:"file"`
	// Enabled toggles the source without removing its configuration.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Source returns the typed storefront tag.
func (c Config) Source() domain.Source {
	return domain.Source(c.Name)
}

// Validate checks a source list for structural problems: empty list, unknown
// storefront names, duplicate names, and missing files.
func Validate(configs []Config) error {
	if len(configs) == 0 {
		return ErrNoSources
	}

	seen := make(map[string]bool, len(configs))
	for _, cfg := range configs {
		if !cfg.Source().IsValid() {
			return fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Name)
		}
		if seen[cfg.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateSource, cfg.Name)
		}
		seen[cfg.Name] = true
		if cfg.File == "" {
			return fmt.Errorf("%w: %q", ErrMissingFile, cfg.Name)
		}
	}
	return nil
}

// Enabled filters a source list down to the enabled entries, preserving
// order.
func Enabled(configs []Config) []Config {
	out := make([]Config, 0, len(configs))
	for _, cfg := range configs {
		if cfg.Enabled {
			out = append(out, cfg)
		}
	}
	return out
}
