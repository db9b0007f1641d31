// Package config defines the Parser's tuning knobs, decodable via
// github.com/BurntSushi/toml: a host embedding this parser in a larger
// tool can keep these knobs in the same TOML file as everything else
// rather than wiring a bespoke flag for each one.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/hallna/structurizr-dsl/include"
)

// Config bundles the Parser's configuration knobs.
type Config struct {
	// MaxErrorCount caps the number of Error/Fatal diagnostics the
	// Reporter will accept before discarding further ones. <= 0 means
	// "use diag.DefaultMaxErrorCount".
	MaxErrorCount int `toml:"max_error_count"`

	// IdentifierScheme selects "flat" or "hierarchical" identifiers absent
	// a "!identifiers" directive in the source. Empty means "flat".
	IdentifierScheme string `toml:"identifier_scheme"`

	// FileLoader resolves !include directives. Not decodable from TOML;
	// set it programmatically after loading the rest of Config.
	FileLoader include.Loader `toml:"-"`
}

// Default returns the Config a Parser uses when none is supplied.
func Default() Config {
	return Config{
		MaxErrorCount:    0,
		IdentifierScheme: "flat",
	}
}

// LoadTOML decodes a Config from the TOML file at path. FileLoader is
// never populated by this function; callers set it after loading.
func LoadTOML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %q: %w", path, err)
	}
	return cfg, nil
}
