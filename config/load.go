package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// Load reads the configuration from the given file.
//
// The decoder is chosen by the file extension: .yaml and .yml files are
// decoded strictly as YAML, .toml files as TOML. Unknown fields are
// rejected either way.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file %s: %w", path, err)
	}
	defer f.Close()

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return decodeYAML(f)
	case ".toml":
		return decodeTOML(f)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
}

// Parse decodes a YAML configuration from the reader.
func Parse(r io.Reader) (*Config, error) {
	return decodeYAML(r)
}

// ParseString decodes a YAML configuration from the string.
func ParseString(s string) (*Config, error) {
	return decodeYAML(strings.NewReader(s))
}

func decodeYAML(r io.Reader) (*Config, error) {
	var cfg Config

	d := yaml.NewDecoder(r)
	d.SetStrict(true)
	if err := d.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode yaml: %w", err)
	}

	return &cfg, nil
}

func decodeTOML(r io.Reader) (*Config, error) {
	var cfg Config

	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	if err := d.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode toml: %w", err)
	}

	return &cfg, nil
}
